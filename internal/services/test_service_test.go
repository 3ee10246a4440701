package services

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jakob/vocabdrill/internal/level"
	"github.com/jakob/vocabdrill/internal/models"
	"github.com/jakob/vocabdrill/internal/testutil/mocks"
)

var testToday = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

func daysAgo(n int) *time.Time {
	d := testToday.AddDate(0, 0, -n)
	return &d
}

func newTestFixture() (*mocks.MockTermRepository, *mocks.MockScoreRepository, *testService) {
	terms := new(mocks.MockTermRepository)
	scores := new(mocks.MockScoreRepository)
	svc := &testService{
		terms:  terms,
		scores: scores,
		levels: level.Default(),
		now:    func() time.Time { return testToday },
	}
	return terms, scores, svc
}

func latinTerm(key string) models.Term {
	return models.Term{Term: key, Category: "Latein: Salve", Language: models.LanguageLatin}
}

func TestScoredTermsComputesUrgency(t *testing.T) {
	terms, scores, svc := newTestFixture()

	terms.On("List", mock.Anything, mock.Anything).Return([]models.Term{
		latinTerm("inside-window"),
		latinTerm("never-tested"),
	}, nil)
	scores.On("ListByLanguage", mock.Anything, models.LanguageLatin).Return([]models.Score{
		{TermKey: "inside-window", Language: models.LanguageLatin, Level: "Red-2", LastTested: daysAgo(5)},
	}, nil)

	scored, err := svc.ScoredTerms(context.Background(), models.LanguageLatin, nil)
	require.NoError(t, err)
	require.Len(t, scored, 2)

	// Red-2 tested 5 days ago has 2 of its 7 retention days left
	assert.Equal(t, 2, scored[0].Urgency.DaysUntilExpiry)
	assert.Equal(t, 1, scored[0].Urgency.Rank)

	// a term with no score row starts at the floor level
	assert.Equal(t, "Red-1", scored[1].Score.Level)
	assert.Equal(t, 0, scored[1].Urgency.Rank)
	assert.False(t, scored[1].Urgency.Deferred())
}

func TestScoredTermsTreatsCorruptScoreAsNeverTested(t *testing.T) {
	terms, scores, svc := newTestFixture()

	terms.On("List", mock.Anything, mock.Anything).Return([]models.Term{latinTerm("pater")}, nil)
	scores.On("ListByLanguage", mock.Anything, models.LanguageLatin).Return([]models.Score{
		{TermKey: "pater", Language: models.LanguageLatin, Level: "Purple", LastTested: daysAgo(3)},
	}, nil)

	scored, err := svc.ScoredTerms(context.Background(), models.LanguageLatin, nil)
	require.NoError(t, err)
	require.Len(t, scored, 1)

	assert.Equal(t, "Red-1", scored[0].Score.Level)
	assert.Nil(t, scored[0].Score.LastTested)
}

func TestBuildSessionOrdersMostUrgentFirst(t *testing.T) {
	terms, scores, svc := newTestFixture()

	terms.On("List", mock.Anything, mock.Anything).Return([]models.Term{
		latinTerm("soon"),
		latinTerm("expired"),
		latinTerm("fresh"),
		latinTerm("waiting"),
	}, nil)
	scores.On("ListByLanguage", mock.Anything, models.LanguageLatin).Return([]models.Score{
		{TermKey: "soon", Language: models.LanguageLatin, Level: "Red-2", LastTested: daysAgo(5)},
		{TermKey: "expired", Language: models.LanguageLatin, Level: "Red-3", LastTested: daysAgo(10)},
		{TermKey: "waiting", Language: models.LanguageLatin, Level: "Yellow-1", LastTested: daysAgo(2)},
	}, nil)

	sess, err := svc.BuildSession(context.Background(), models.LanguageLatin, nil, 100)
	require.NoError(t, err)

	// expired before due-soon before never-tested; the dwelling term is out
	assert.Equal(t, []string{"expired", "soon", "fresh"}, sess.TermKeys)
	assert.True(t, sess.ShowTerm)
	assert.Equal(t, models.LanguageLatin, sess.Language)
}

func TestBuildSessionCapsTermCount(t *testing.T) {
	terms, scores, svc := newTestFixture()

	terms.On("List", mock.Anything, mock.Anything).Return([]models.Term{
		latinTerm("a"), latinTerm("b"), latinTerm("c"),
	}, nil)
	scores.On("ListByLanguage", mock.Anything, models.LanguageLatin).Return([]models.Score{}, nil)

	sess, err := svc.BuildSession(context.Background(), models.LanguageLatin, nil, 2)
	require.NoError(t, err)
	assert.Len(t, sess.TermKeys, 2)
}

func TestBuildSessionShufflesFirstRound(t *testing.T) {
	terms, scores, svc := newTestFixture()

	terms.On("List", mock.Anything, mock.Anything).Return([]models.Term{
		latinTerm("a"), latinTerm("b"), latinTerm("c"),
	}, nil)
	scores.On("ListByLanguage", mock.Anything, models.LanguageLatin).Return([]models.Score{}, nil)

	sess, err := svc.BuildSession(context.Background(), models.LanguageLatin, nil, 100)
	require.NoError(t, err)

	// The card order is ready before the first render, so the very first
	// answer already has a current card to resolve.
	require.Len(t, sess.Order, len(sess.TermKeys))
	shuffled := append([]int(nil), sess.Order...)
	sort.Ints(shuffled)
	assert.Equal(t, []int{0, 1, 2}, shuffled, "order is a permutation of the term indexes")
	assert.Contains(t, sess.TermKeys, sess.CurrentKey())
}

func TestBuildSessionValidation(t *testing.T) {
	_, _, svc := newTestFixture()

	_, err := svc.BuildSession(context.Background(), "", nil, 10)
	assert.Error(t, err)

	_, err = svc.BuildSession(context.Background(), models.LanguageLatin, nil, 0)
	assert.Error(t, err)
}

func answerSession(keys ...string) *models.TestSession {
	order := make([]int, len(keys))
	for i := range order {
		order[i] = i
	}
	return &models.TestSession{
		Language: models.LanguageLatin,
		TermKeys: keys,
		Order:    order,
		ShowTerm: true,
	}
}

func TestRecordAnswerRejectsSessionWithoutOrder(t *testing.T) {
	_, _, svc := newTestFixture()

	sess := &models.TestSession{
		Language: models.LanguageLatin,
		TermKeys: []string{"pater"},
	}

	err := svc.RecordAnswer(context.Background(), sess, true)
	assert.Error(t, err, "a session whose card order was never populated has no current card")
}

func TestRecordAnswerPromotesOnCorrect(t *testing.T) {
	_, scores, svc := newTestFixture()
	sess := answerSession("pater")

	scores.On("Get", mock.Anything, models.LanguageLatin, "pater").Return(
		&models.Score{TermKey: "pater", Language: models.LanguageLatin, Level: "Red-2", LastTested: daysAgo(5)}, nil)
	scores.On("Upsert", mock.Anything, mock.MatchedBy(func(s models.Score) bool {
		return s.TermKey == "pater" && s.Level == "Red-3" && s.LastTested != nil
	})).Return(nil)

	require.NoError(t, svc.RecordAnswer(context.Background(), sess, true))
	assert.Equal(t, 1, sess.Correct)
	assert.Zero(t, sess.Wrong)
	scores.AssertExpectations(t)
}

func TestRecordAnswerDemotesOnWrong(t *testing.T) {
	_, scores, svc := newTestFixture()
	sess := answerSession("templum")

	scores.On("Get", mock.Anything, models.LanguageLatin, "templum").Return(
		&models.Score{TermKey: "templum", Language: models.LanguageLatin, Level: "Green", LastTested: daysAgo(30)}, nil)
	scores.On("Upsert", mock.Anything, mock.MatchedBy(func(s models.Score) bool {
		return s.Level == "Red-1"
	})).Return(nil)

	require.NoError(t, svc.RecordAnswer(context.Background(), sess, false))
	assert.Equal(t, 1, sess.Wrong)
	assert.Equal(t, []string{"templum"}, sess.WrongKeys)
}

func TestRecordAnswerStartsNewTermsAtTheFloor(t *testing.T) {
	_, scores, svc := newTestFixture()
	sess := answerSession("novus")

	scores.On("Get", mock.Anything, models.LanguageLatin, "novus").Return(nil, nil)
	scores.On("Upsert", mock.Anything, mock.MatchedBy(func(s models.Score) bool {
		return s.Level == "Red-2"
	})).Return(nil)

	require.NoError(t, svc.RecordAnswer(context.Background(), sess, true))
	scores.AssertExpectations(t)
}

func TestRecordAnswerRecoversFromCorruptScore(t *testing.T) {
	_, scores, svc := newTestFixture()
	sess := answerSession("pater")

	scores.On("Get", mock.Anything, models.LanguageLatin, "pater").Return(
		&models.Score{TermKey: "pater", Language: models.LanguageLatin, Level: "Purple", LastTested: daysAgo(3)}, nil)
	scores.On("Upsert", mock.Anything, mock.MatchedBy(func(s models.Score) bool {
		return s.Level == "Red-2"
	})).Return(nil)

	require.NoError(t, svc.RecordAnswer(context.Background(), sess, true))
	scores.AssertExpectations(t)
}

func TestScoresCSV(t *testing.T) {
	_, scores, svc := newTestFixture()

	scores.On("All", mock.Anything).Return([]models.Score{
		{TermKey: "house", Language: models.LanguageEnglish, Level: "Yellow-1", LastTested: daysAgo(2)},
		{TermKey: "pater", Language: models.LanguageLatin, Level: "Red-2"},
	}, nil)

	data, err := svc.ScoresCSV(context.Background())
	require.NoError(t, err)

	want := "term,language,level,last_tested\n" +
		"house,Englisch,Yellow-1,2025-03-13\n" +
		"pater,Latein,Red-2,\n"
	assert.Equal(t, want, string(data))
}
