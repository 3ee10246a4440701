package repository

import (
	"context"

	"github.com/jakob/vocabdrill/internal/models"
)

// TermRepository handles vocabulary term data access. The spreadsheet is
// the source of truth; the local table is a cache that sync replaces
// wholesale per language.
type TermRepository interface {
	ReplaceForLanguage(ctx context.Context, language string, terms []models.Term) error
	List(ctx context.Context, filter models.TermFilter) ([]models.Term, error)
	Get(ctx context.Context, language, key string) (*models.Term, error)
	Categories(ctx context.Context, language string) ([]string, error)
	LastSync(ctx context.Context, language string) (*models.SyncState, error)
}
