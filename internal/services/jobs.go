package services

import (
	"context"
	"os"
)

// SyncVocabJob re-fetches the spreadsheet in the background. It
// implements worker.Job.
type SyncVocabJob struct {
	Vocab VocabService
}

func (j *SyncVocabJob) Name() string { return "sync-vocab" }

func (j *SyncVocabJob) Run(ctx context.Context) error {
	return j.Vocab.Sync(ctx)
}

// ScoreExportJob snapshots every stored score to a CSV file, so mastery
// data survives outside the sqlite cache.
type ScoreExportJob struct {
	Tests TestService
	Path  string
}

func (j *ScoreExportJob) Name() string { return "score-export" }

func (j *ScoreExportJob) Run(ctx context.Context) error {
	data, err := j.Tests.ScoresCSV(ctx)
	if err != nil {
		return err
	}
	return os.WriteFile(j.Path, data, 0o644)
}
