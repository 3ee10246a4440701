package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jakob/vocabdrill/internal/logger"
	"github.com/jakob/vocabdrill/internal/models"
	"github.com/jakob/vocabdrill/internal/repository"
)

type scoreRepository struct {
	db *sql.DB
}

// NewScoreRepository creates a new ScoreRepository implementation
func NewScoreRepository(db *sql.DB) repository.ScoreRepository {
	return &scoreRepository{db: db}
}

func (r *scoreRepository) Get(ctx context.Context, language, termKey string) (*models.Score, error) {
	log := logger.FromContext(ctx).WithPrefix("score_repo")

	var s models.Score
	err := r.db.QueryRowContext(ctx, `
SELECT term_key, language, level, last_tested, updated_at
FROM scores
WHERE language = ? AND term_key = ?
`, language, termKey).Scan(&s.TermKey, &s.Language, &s.Level, &s.LastTested, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no score for term: language=%s, key=%s", language, termKey)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get score: %v", err)
		return nil, err
	}
	return &s, nil
}

func (r *scoreRepository) Upsert(ctx context.Context, score models.Score) error {
	log := logger.FromContext(ctx).WithPrefix("score_repo")
	log.Debug("upserting score: key=%s, level=%s", score.TermKey, score.Level)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO scores (term_key, language, level, last_tested, updated_at)
VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(term_key, language) DO UPDATE SET
    level = excluded.level,
    last_tested = excluded.last_tested,
    updated_at = CURRENT_TIMESTAMP
`, score.TermKey, score.Language, score.Level, score.LastTested)
	if err != nil {
		log.Error("failed to upsert score: %v", err)
	}
	return err
}

func (r *scoreRepository) ListByLanguage(ctx context.Context, language string) ([]models.Score, error) {
	log := logger.FromContext(ctx).WithPrefix("score_repo")
	log.Debug("listing scores: language=%s", language)

	rows, err := r.db.QueryContext(ctx, `
SELECT term_key, language, level, last_tested, updated_at
FROM scores
WHERE language = ?
ORDER BY term_key ASC
`, language)
	if err != nil {
		log.Error("failed to list scores: %v", err)
		return nil, err
	}
	defer rows.Close()
	return scanScores(rows, log)
}

func (r *scoreRepository) All(ctx context.Context) ([]models.Score, error) {
	log := logger.FromContext(ctx).WithPrefix("score_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT term_key, language, level, last_tested, updated_at
FROM scores
ORDER BY language ASC, term_key ASC
`)
	if err != nil {
		log.Error("failed to list all scores: %v", err)
		return nil, err
	}
	defer rows.Close()
	return scanScores(rows, log)
}

func scanScores(rows *sql.Rows, log *logger.Logger) ([]models.Score, error) {
	var scores []models.Score
	for rows.Next() {
		var s models.Score
		if err := rows.Scan(&s.TermKey, &s.Language, &s.Level, &s.LastTested, &s.UpdatedAt); err != nil {
			log.Error("failed to scan score row: %v", err)
			return nil, err
		}
		scores = append(scores, s)
	}
	log.Debug("found %d scores", len(scores))
	return scores, rows.Err()
}
