package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jakob/vocabdrill/internal/logger"
	"github.com/jakob/vocabdrill/internal/models"
	"github.com/jakob/vocabdrill/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type termRepository struct {
	db *sql.DB
}

// NewTermRepository creates a new TermRepository implementation
func NewTermRepository(db *sql.DB) repository.TermRepository {
	return &termRepository{db: db}
}

func (r *termRepository) ReplaceForLanguage(ctx context.Context, language string, terms []models.Term) error {
	log := logger.FromContext(ctx).WithPrefix("term_repo")
	log.Debug("replacing terms: language=%s, count=%d", language, len(terms))

	return tx(ctx, r.db, func(t *sql.Tx) error {
		if _, err := t.ExecContext(ctx, `DELETE FROM terms WHERE language = ?`, language); err != nil {
			log.Error("failed to clear terms: %v", err)
			return err
		}
		stmt, err := t.PrepareContext(ctx, `
INSERT INTO terms (term, comment, translation, category, language, position)
VALUES (?, ?, ?, ?, ?, ?)
`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		// The term is the score key, so it must be unique per language.
		// Sheets occasionally list a word under two categories; keep the
		// first occurrence instead of failing the whole sync.
		seen := make(map[string]bool, len(terms))
		inserted := 0
		for _, term := range terms {
			if seen[term.Term] {
				log.Warn("duplicate term %q in %s sheet, keeping first occurrence", term.Term, language)
				continue
			}
			seen[term.Term] = true
			if _, err := stmt.ExecContext(ctx, term.Term, term.Comment, term.Translation, term.Category, language, inserted); err != nil {
				log.Error("failed to insert term %q: %v", term.Term, err)
				return err
			}
			inserted++
		}
		_, err = t.ExecContext(ctx, `
INSERT INTO sync_state (language, term_count, synced_at)
VALUES (?, ?, ?)
ON CONFLICT(language) DO UPDATE SET term_count = excluded.term_count, synced_at = excluded.synced_at
`, language, inserted, time.Now().UTC())
		return err
	})
}

func (r *termRepository) List(ctx context.Context, filter models.TermFilter) ([]models.Term, error) {
	log := logger.FromContext(ctx).WithPrefix("term_repo")
	log.Debug("listing terms: language=%s, categories=%d", filter.Language, len(filter.Categories))

	query := sqlBuilder.Select(
		"id", "term", "comment", "translation", "category", "language",
	).From("terms")

	// Dynamic WHERE clauses
	if filter.Language != "" {
		query = query.Where(squirrel.Eq{"language": filter.Language})
	}
	if len(filter.Categories) > 0 {
		query = query.Where(squirrel.Eq{"category": filter.Categories})
	}

	query = query.OrderBy("position ASC")

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list terms: %v", err)
		return nil, err
	}
	defer rows.Close()

	var terms []models.Term
	for rows.Next() {
		var t models.Term
		if err := rows.Scan(&t.ID, &t.Term, &t.Comment, &t.Translation, &t.Category, &t.Language); err != nil {
			log.Error("failed to scan term row: %v", err)
			return nil, err
		}
		terms = append(terms, t)
	}
	log.Debug("found %d terms", len(terms))
	return terms, rows.Err()
}

func (r *termRepository) Get(ctx context.Context, language, key string) (*models.Term, error) {
	log := logger.FromContext(ctx).WithPrefix("term_repo")

	var t models.Term
	err := r.db.QueryRowContext(ctx, `
SELECT id, term, comment, translation, category, language
FROM terms
WHERE language = ? AND term = ?
`, language, key).Scan(&t.ID, &t.Term, &t.Comment, &t.Translation, &t.Category, &t.Language)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("term not found: language=%s, key=%s", language, key)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get term: %v", err)
		return nil, err
	}
	return &t, nil
}

func (r *termRepository) Categories(ctx context.Context, language string) ([]string, error) {
	log := logger.FromContext(ctx).WithPrefix("term_repo")
	log.Debug("listing categories: language=%s", language)

	rows, err := r.db.QueryContext(ctx, `
SELECT category
FROM terms
WHERE language = ? AND category != ''
GROUP BY category
ORDER BY MIN(position) ASC
`, language)
	if err != nil {
		log.Error("failed to list categories: %v", err)
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			log.Error("failed to scan category row: %v", err)
			return nil, err
		}
		categories = append(categories, c)
	}
	log.Debug("found %d categories", len(categories))
	return categories, rows.Err()
}

func (r *termRepository) LastSync(ctx context.Context, language string) (*models.SyncState, error) {
	log := logger.FromContext(ctx).WithPrefix("term_repo")

	var s models.SyncState
	err := r.db.QueryRowContext(ctx, `
SELECT language, term_count, synced_at
FROM sync_state
WHERE language = ?
`, language).Scan(&s.Language, &s.TermCount, &s.SyncedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get sync state: %v", err)
		return nil, err
	}
	return &s, nil
}
