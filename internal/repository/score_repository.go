package repository

import (
	"context"

	"github.com/jakob/vocabdrill/internal/models"
)

// ScoreRepository handles per-term mastery state. Scores are created
// implicitly the first time a term is answered and only ever overwritten.
type ScoreRepository interface {
	Get(ctx context.Context, language, termKey string) (*models.Score, error)
	Upsert(ctx context.Context, score models.Score) error
	ListByLanguage(ctx context.Context, language string) ([]models.Score, error)
	All(ctx context.Context) ([]models.Score, error)
}
