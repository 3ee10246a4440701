package services

import (
	"bytes"
	"context"
	"encoding/csv"
	gerrors "errors"
	"math/rand"
	"sort"
	"time"

	"github.com/jakob/vocabdrill/internal/errors"
	"github.com/jakob/vocabdrill/internal/level"
	"github.com/jakob/vocabdrill/internal/logger"
	"github.com/jakob/vocabdrill/internal/models"
	"github.com/jakob/vocabdrill/internal/repository"
)

// TestService builds test sessions and records answers through the level
// engine.
type TestService interface {
	BuildSession(ctx context.Context, language string, categories []string, maxTerms int) (*models.TestSession, error)
	CurrentTerm(ctx context.Context, sess *models.TestSession) (*models.Term, error)
	RecordAnswer(ctx context.Context, sess *models.TestSession, correct bool) error
	ScoredTerms(ctx context.Context, language string, categories []string) ([]models.ScoredTerm, error)
	ScoresCSV(ctx context.Context) ([]byte, error)
}

type testService struct {
	terms  repository.TermRepository
	scores repository.ScoreRepository
	levels *level.Table
	now    func() time.Time
}

// NewTestService creates a new TestService
func NewTestService(terms repository.TermRepository, scores repository.ScoreRepository, levels *level.Table) TestService {
	return &testService{terms: terms, scores: scores, levels: levels, now: time.Now}
}

// scoreFor returns the stored score or the never-tested default.
func (s *testService) scoreFor(stored map[string]models.Score, term models.Term) models.Score {
	if sc, ok := stored[term.Key()]; ok {
		return sc
	}
	return models.Score{
		TermKey:  term.Key(),
		Language: term.Language,
		Level:    s.levels.Lowest().Name,
	}
}

// ScoredTerms joins terms with their scores and urgencies. A score the
// engine rejects as corrupted (unknown level, future date) is logged and
// treated as never tested; the engine itself never guesses.
func (s *testService) ScoredTerms(ctx context.Context, language string, categories []string) ([]models.ScoredTerm, error) {
	log := logger.FromContext(ctx)

	terms, err := s.terms.List(ctx, models.TermFilter{Language: language, Categories: categories})
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	scoreList, err := s.scores.ListByLanguage(ctx, language)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	stored := make(map[string]models.Score, len(scoreList))
	for _, sc := range scoreList {
		stored[sc.TermKey] = sc
	}

	today := s.now()
	scored := make([]models.ScoredTerm, 0, len(terms))
	for _, term := range terms {
		score := s.scoreFor(stored, term)
		urgency, err := s.levels.Urgency(score.Level, score.LastTested, today)
		if err != nil {
			if !isCorruptScore(err) {
				return nil, errors.NewInternalError(err)
			}
			log.Warn("corrupted score for %q (%v), treating as never tested", term.Key(), err)
			score = models.Score{TermKey: term.Key(), Language: language, Level: s.levels.Lowest().Name}
			urgency, _ = s.levels.Urgency(score.Level, nil, today)
		}
		scored = append(scored, models.ScoredTerm{Term: term, Score: score, Urgency: urgency})
	}
	return scored, nil
}

// BuildSession selects the terms to test, most urgent first. Terms still
// inside their dwell time are left out entirely.
func (s *testService) BuildSession(ctx context.Context, language string, categories []string, maxTerms int) (*models.TestSession, error) {
	log := logger.FromContext(ctx)

	if language == "" {
		return nil, errors.NewValidationError("language", "must not be empty")
	}
	if maxTerms <= 0 {
		return nil, errors.NewValidationError("maxTerms", "must be positive")
	}

	scored, err := s.ScoredTerms(ctx, language, categories)
	if err != nil {
		return nil, err
	}

	eligible := scored[:0]
	for _, st := range scored {
		if !st.Urgency.Deferred() {
			eligible = append(eligible, st)
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].Urgency.Less(eligible[j].Urgency)
	})
	if len(eligible) > maxTerms {
		eligible = eligible[:maxTerms]
	}

	keys := make([]string, len(eligible))
	for i, st := range eligible {
		keys[i] = st.Term.Key()
	}

	log.Debug("built test session: language=%s, terms=%d", language, len(keys))
	// The first round's card order is shuffled here, so the session is
	// answerable immediately; later rounds reshuffle on render.
	return &models.TestSession{
		Language:  language,
		TermKeys:  keys,
		Order:     rand.Perm(len(keys)),
		ShowTerm:  true,
		StartedAt: s.now(),
	}, nil
}

func (s *testService) CurrentTerm(ctx context.Context, sess *models.TestSession) (*models.Term, error) {
	key := sess.CurrentKey()
	if key == "" {
		return nil, errors.NewNotFoundError("term", "current")
	}
	term, err := s.terms.Get(ctx, sess.Language, key)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if term == nil {
		return nil, errors.NewNotFoundError("term", key)
	}
	return term, nil
}

// RecordAnswer runs the current card through the level engine and
// persists the outcome. Eligibility is re-checked by the engine, not
// assumed from session state.
func (s *testService) RecordAnswer(ctx context.Context, sess *models.TestSession, correct bool) error {
	log := logger.FromContext(ctx)

	key := sess.CurrentKey()
	if key == "" {
		return errors.NewBadRequestError("test session has no terms")
	}

	score, err := s.scores.Get(ctx, sess.Language, key)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if score == nil {
		score = &models.Score{TermKey: key, Language: sess.Language, Level: s.levels.Lowest().Name}
	}

	today := s.now()
	result, err := s.levels.ProcessAnswer(score.Level, score.LastTested, today, correct)
	if err != nil {
		if !isCorruptScore(err) {
			return errors.NewInternalError(err)
		}
		log.Warn("corrupted score for %q (%v), treating as never tested", key, err)
		result, err = s.levels.ProcessAnswer(s.levels.Lowest().Name, nil, today, correct)
		if err != nil {
			return errors.NewInternalError(err)
		}
	}

	newScore := models.Score{
		TermKey:    key,
		Language:   sess.Language,
		Level:      result.Level.Name,
		LastTested: &result.LastTested,
	}
	if err := s.scores.Upsert(ctx, newScore); err != nil {
		return errors.NewInternalError(err)
	}

	if correct {
		sess.Correct++
	} else {
		sess.Wrong++
		sess.WrongKeys = append(sess.WrongKeys, key)
	}

	log.Debug("answer recorded: key=%s, correct=%v, level=%s", key, correct, result.Level.Name)
	return nil
}

// ScoresCSV renders every stored score as CSV, the format the source
// spreadsheet's score tabs use.
func (s *testService) ScoresCSV(ctx context.Context) ([]byte, error) {
	scores, err := s.scores.All(ctx)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"term", "language", "level", "last_tested"})
	for _, sc := range scores {
		lastTested := ""
		if sc.LastTested != nil {
			lastTested = sc.LastTested.Format("2006-01-02")
		}
		_ = w.Write([]string{sc.TermKey, sc.Language, sc.Level, lastTested})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, errors.NewInternalError(err)
	}
	return buf.Bytes(), nil
}

// isCorruptScore reports whether err marks stored score data the engine
// refuses to interpret.
func isCorruptScore(err error) bool {
	var unknownErr *level.UnknownLevelError
	var dateErr *level.InvalidDateError
	return gerrors.As(err, &unknownErr) || gerrors.As(err, &dateErr)
}
