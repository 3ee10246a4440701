package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jakob/vocabdrill/internal/models"
)

func TestSyncVocabJobDelegatesToService(t *testing.T) {
	terms, client, svc := newVocabFixture()

	client.On("FetchTerms", mock.Anything, mock.Anything, mock.Anything).Return([]models.Term{}, nil)
	terms.On("ReplaceForLanguage", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	job := &SyncVocabJob{Vocab: svc}
	assert.Equal(t, "sync-vocab", job.Name())
	require.NoError(t, job.Run(context.Background()))
	client.AssertExpectations(t)
}

func TestScoreExportJobWritesSnapshot(t *testing.T) {
	_, scores, svc := newTestFixture()

	scores.On("All", mock.Anything).Return([]models.Score{
		{TermKey: "pater", Language: models.LanguageLatin, Level: "Red-2", LastTested: daysAgo(1)},
	}, nil)

	path := filepath.Join(t.TempDir(), "scores.csv")
	job := &ScoreExportJob{Tests: svc, Path: path}
	assert.Equal(t, "score-export", job.Name())
	require.NoError(t, job.Run(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "term,language,level,last_tested", lines[0])
	assert.Equal(t, "pater,Latein,Red-2,2025-03-14", lines[1])
}
