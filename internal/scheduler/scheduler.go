// Package scheduler periodically refreshes the vocabulary cache from the
// spreadsheet and snapshots scores to disk.
package scheduler

import (
	"time"

	"github.com/go-co-op/gocron"

	"github.com/jakob/vocabdrill/internal/logger"
	"github.com/jakob/vocabdrill/internal/services"
	"github.com/jakob/vocabdrill/internal/worker"
)

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	pool      *worker.Pool
	vocab     services.VocabService
	tests     services.TestService
	log       *logger.Logger
}

// New creates a new scheduler instance
func New(pool *worker.Pool, vocab services.VocabService, tests services.TestService) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		pool:      pool,
		vocab:     vocab,
		tests:     tests,
		log:       logger.Default().WithPrefix("scheduler"),
	}
}

// Start begins running all scheduled tasks. An empty exportPath disables
// the score snapshot job.
func (s *Scheduler) Start(syncInterval time.Duration, exportPath string, exportInterval time.Duration) {
	s.log.Info("scheduling vocabulary sync every %v", syncInterval)
	_, err := s.scheduler.Every(syncInterval).Do(func() {
		if err := s.pool.Submit(&services.SyncVocabJob{Vocab: s.vocab}); err != nil {
			s.log.Warn("skipping sync run: %v", err)
		}
	})
	if err != nil {
		s.log.Error("failed to schedule sync job: %v", err)
		return
	}

	if exportPath != "" {
		s.log.Info("scheduling score export to %s every %v", exportPath, exportInterval)
		_, err := s.scheduler.Every(exportInterval).Do(func() {
			if err := s.pool.Submit(&services.ScoreExportJob{Tests: s.tests, Path: exportPath}); err != nil {
				s.log.Warn("skipping score export run: %v", err)
			}
		})
		if err != nil {
			s.log.Error("failed to schedule score export job: %v", err)
			return
		}
	}

	// Start the scheduler in a non-blocking manner
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.log.Info("stopping scheduler")
	s.scheduler.Stop()
}
