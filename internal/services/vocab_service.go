package services

import (
	"context"

	"github.com/jakob/vocabdrill/internal/errors"
	"github.com/jakob/vocabdrill/internal/logger"
	"github.com/jakob/vocabdrill/internal/models"
	"github.com/jakob/vocabdrill/internal/repository"
	"github.com/jakob/vocabdrill/internal/sheets"
)

// VocabService handles vocabulary sync and retrieval
type VocabService interface {
	Sync(ctx context.Context) error
	Categories(ctx context.Context, language string) ([]string, error)
	Terms(ctx context.Context, language string, categories []string) ([]models.Term, error)
	PracticeSet(ctx context.Context, language string, categories []string) ([]models.CategoryGroup, error)
	LastSync(ctx context.Context, language string) (*models.SyncState, error)
}

type vocabService struct {
	terms  repository.TermRepository
	client sheets.ClientInterface
	tabs   map[string]string // language -> sheet gid
}

// NewVocabService creates a new VocabService
func NewVocabService(terms repository.TermRepository, client sheets.ClientInterface, gidLatin, gidEnglish string) VocabService {
	return &vocabService{
		terms:  terms,
		client: client,
		tabs: map[string]string{
			models.LanguageLatin:   gidLatin,
			models.LanguageEnglish: gidEnglish,
		},
	}
}

func (s *vocabService) Sync(ctx context.Context) error {
	log := logger.FromContext(ctx)

	for _, language := range []string{models.LanguageLatin, models.LanguageEnglish} {
		gid := s.tabs[language]
		terms, err := s.client.FetchTerms(ctx, gid, language)
		if err != nil {
			log.Error("failed to fetch %s terms: %v", language, err)
			return errors.NewInternalError(err)
		}
		if err := s.terms.ReplaceForLanguage(ctx, language, terms); err != nil {
			log.Error("failed to store %s terms: %v", language, err)
			return errors.NewInternalError(err)
		}
		log.Info("synced %d %s terms", len(terms), language)
	}
	return nil
}

func (s *vocabService) Categories(ctx context.Context, language string) ([]string, error) {
	if language == "" {
		return nil, errors.NewValidationError("language", "must not be empty")
	}
	categories, err := s.terms.Categories(ctx, language)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return categories, nil
}

func (s *vocabService) Terms(ctx context.Context, language string, categories []string) ([]models.Term, error) {
	if language == "" {
		return nil, errors.NewValidationError("language", "must not be empty")
	}
	terms, err := s.terms.List(ctx, models.TermFilter{Language: language, Categories: categories})
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return terms, nil
}

// PracticeSet groups the selected terms by category, preserving sheet
// order within each category.
func (s *vocabService) PracticeSet(ctx context.Context, language string, categories []string) ([]models.CategoryGroup, error) {
	terms, err := s.Terms(ctx, language, categories)
	if err != nil {
		return nil, err
	}

	var groups []models.CategoryGroup
	index := map[string]int{}
	for _, term := range terms {
		i, ok := index[term.Category]
		if !ok {
			i = len(groups)
			index[term.Category] = i
			groups = append(groups, models.CategoryGroup{Category: term.Category})
		}
		groups[i].Terms = append(groups[i].Terms, term)
	}
	return groups, nil
}

func (s *vocabService) LastSync(ctx context.Context, language string) (*models.SyncState, error) {
	state, err := s.terms.LastSync(ctx, language)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return state, nil
}
