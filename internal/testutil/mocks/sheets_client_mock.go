package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jakob/vocabdrill/internal/models"
)

// MockSheetsClient is a mock implementation of sheets.ClientInterface
type MockSheetsClient struct {
	mock.Mock
}

func (m *MockSheetsClient) FetchTerms(ctx context.Context, gid, language string) ([]models.Term, error) {
	args := m.Called(ctx, gid, language)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Term), args.Error(1)
}
