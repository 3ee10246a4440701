package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jakob/vocabdrill/internal/models"
	"github.com/jakob/vocabdrill/internal/testutil/mocks"
)

func newVocabFixture() (*mocks.MockTermRepository, *mocks.MockSheetsClient, VocabService) {
	terms := new(mocks.MockTermRepository)
	client := new(mocks.MockSheetsClient)
	svc := NewVocabService(terms, client, "0", "42")
	return terms, client, svc
}

func TestSyncFetchesBothLanguages(t *testing.T) {
	terms, client, svc := newVocabFixture()

	latin := []models.Term{{Term: "pater", Language: models.LanguageLatin}}
	english := []models.Term{{Term: "house", Language: models.LanguageEnglish}}

	client.On("FetchTerms", mock.Anything, "0", models.LanguageLatin).Return(latin, nil)
	client.On("FetchTerms", mock.Anything, "42", models.LanguageEnglish).Return(english, nil)
	terms.On("ReplaceForLanguage", mock.Anything, models.LanguageLatin, latin).Return(nil)
	terms.On("ReplaceForLanguage", mock.Anything, models.LanguageEnglish, english).Return(nil)

	err := svc.Sync(context.Background())
	require.NoError(t, err)

	client.AssertExpectations(t)
	terms.AssertExpectations(t)
}

func TestSyncStopsOnFetchError(t *testing.T) {
	terms, client, svc := newVocabFixture()

	client.On("FetchTerms", mock.Anything, "0", models.LanguageLatin).
		Return(nil, errors.New("sheet unreachable"))

	err := svc.Sync(context.Background())
	require.Error(t, err)

	terms.AssertNotCalled(t, "ReplaceForLanguage", mock.Anything, mock.Anything, mock.Anything)
}

func TestCategoriesRequiresLanguage(t *testing.T) {
	_, _, svc := newVocabFixture()

	_, err := svc.Categories(context.Background(), "")
	assert.Error(t, err)
}

func TestPracticeSetGroupsByCategoryInSheetOrder(t *testing.T) {
	terms, _, svc := newVocabFixture()

	terms.On("List", mock.Anything, models.TermFilter{Language: models.LanguageLatin}).Return([]models.Term{
		{Term: "Salvē", Category: "Latein: Salve", Language: models.LanguageLatin},
		{Term: "templum", Category: "Latein: Das Kapitol", Language: models.LanguageLatin},
		{Term: "pater", Category: "Latein: Salve", Language: models.LanguageLatin},
	}, nil)

	groups, err := svc.PracticeSet(context.Background(), models.LanguageLatin, nil)
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, "Latein: Salve", groups[0].Category)
	require.Len(t, groups[0].Terms, 2)
	assert.Equal(t, "Salvē", groups[0].Terms[0].Term)
	assert.Equal(t, "pater", groups[0].Terms[1].Term)

	assert.Equal(t, "Latein: Das Kapitol", groups[1].Category)
	require.Len(t, groups[1].Terms, 1)
}
