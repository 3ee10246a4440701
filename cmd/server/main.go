package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jakob/vocabdrill/internal/api"
	"github.com/jakob/vocabdrill/internal/config"
	"github.com/jakob/vocabdrill/internal/db"
	"github.com/jakob/vocabdrill/internal/level"
	"github.com/jakob/vocabdrill/internal/logger"
	"github.com/jakob/vocabdrill/internal/repository/sqlite"
	"github.com/jakob/vocabdrill/internal/scheduler"
	"github.com/jakob/vocabdrill/internal/services"
	"github.com/jakob/vocabdrill/internal/session"
	"github.com/jakob/vocabdrill/internal/sheets"
	"github.com/jakob/vocabdrill/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("VocabDrill Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("sheet_id=%s", cfg.SheetID)
	log.Debug("sync_interval_minutes=%d", cfg.SyncMinutes)
	log.Debug("session_ttl_hours=%d", cfg.SessionTTLHours)
	log.Debug("max_test_terms=%d", cfg.MaxTestTerms)
	log.Debug("sync_worker_count=%d", cfg.SyncWorkerCount)
	log.Debug("sync_queue_size=%d", cfg.SyncQueueSize)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Load templates
	log.Debug("loading templates")
	tmpl, err := api.LoadTemplates()
	if err != nil {
		log.Error("failed to load templates: %v", err)
		os.Exit(1)
	}
	log.Debug("templates loaded successfully")

	// Initialize repositories and services
	termRepo := sqlite.NewTermRepository(database.DB)
	scoreRepo := sqlite.NewScoreRepository(database.DB)
	sheetsClient := sheets.New(cfg.SheetBaseURL, cfg.SheetID)

	vocabService := services.NewVocabService(termRepo, sheetsClient, cfg.SheetGIDLatin, cfg.SheetGIDEnglish)
	testService := services.NewTestService(termRepo, scoreRepo, level.Default())

	// Session store with background expiry sweep
	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour
	sessions := session.NewStore(sessionTTL)

	// Background sync: worker pool fed by the scheduler
	syncPool := worker.NewPool(cfg.SyncWorkerCount, cfg.SyncQueueSize)
	sched := scheduler.New(syncPool, vocabService, testService)

	srv := &api.Server{
		Vocab:        vocabService,
		Tests:        testService,
		Sessions:     sessions,
		Templates:    tmpl,
		MaxTestTerms: cfg.MaxTestTerms,
		SessionTTL:   sessionTTL,
	}

	ctx, cancel := context.WithCancel(context.Background())
	syncPool.Start(ctx)
	sessions.StartJanitor(ctx, 10*time.Minute)
	sched.Start(
		time.Duration(cfg.SyncMinutes)*time.Minute,
		cfg.ScoreExportPath,
		time.Duration(cfg.ScoreExportHrs)*time.Hour,
	)

	// Initial sync so the app has data before the first scheduled run.
	// Failure is not fatal; previously synced terms are still served.
	if err := vocabService.Sync(ctx); err != nil {
		log.Warn("initial vocabulary sync failed: %v", err)
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping scheduler")
	sched.Stop()

	// Cancel worker context
	log.Debug("stopping background workers")
	cancel()

	// Shutdown HTTP server
	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// Wait for workers to finish
	log.Debug("stopping sync pool")
	syncPool.Stop()

	log.Info("===========================================")
	log.Info("VocabDrill Server Stopped")
	log.Info("===========================================")
}
