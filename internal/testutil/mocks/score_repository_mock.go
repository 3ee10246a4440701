package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jakob/vocabdrill/internal/models"
)

// MockScoreRepository is a mock implementation of repository.ScoreRepository
type MockScoreRepository struct {
	mock.Mock
}

func (m *MockScoreRepository) Get(ctx context.Context, language, termKey string) (*models.Score, error) {
	args := m.Called(ctx, language, termKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Score), args.Error(1)
}

func (m *MockScoreRepository) Upsert(ctx context.Context, score models.Score) error {
	args := m.Called(ctx, score)
	return args.Error(0)
}

func (m *MockScoreRepository) ListByLanguage(ctx context.Context, language string) ([]models.Score, error) {
	args := m.Called(ctx, language)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Score), args.Error(1)
}

func (m *MockScoreRepository) All(ctx context.Context) ([]models.Score, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Score), args.Error(1)
}
