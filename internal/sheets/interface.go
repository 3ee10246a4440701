package sheets

import (
	"context"

	"github.com/jakob/vocabdrill/internal/models"
)

// ClientInterface defines the interface for sheet fetch operations.
// This interface enables testability by allowing mock implementations.
type ClientInterface interface {
	FetchTerms(ctx context.Context, gid, language string) ([]models.Term, error)
}

// Ensure Client implements the interface
var _ ClientInterface = (*Client)(nil)
