package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jakob/vocabdrill/internal/models"
)

// MockTermRepository is a mock implementation of repository.TermRepository
type MockTermRepository struct {
	mock.Mock
}

func (m *MockTermRepository) ReplaceForLanguage(ctx context.Context, language string, terms []models.Term) error {
	args := m.Called(ctx, language, terms)
	return args.Error(0)
}

func (m *MockTermRepository) List(ctx context.Context, filter models.TermFilter) ([]models.Term, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Term), args.Error(1)
}

func (m *MockTermRepository) Get(ctx context.Context, language, key string) (*models.Term, error) {
	args := m.Called(ctx, language, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Term), args.Error(1)
}

func (m *MockTermRepository) Categories(ctx context.Context, language string) ([]string, error) {
	args := m.Called(ctx, language)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTermRepository) LastSync(ctx context.Context, language string) (*models.SyncState, error) {
	args := m.Called(ctx, language)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SyncState), args.Error(1)
}
