package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr            string
	DBPath          string
	LogLevel        string
	SheetBaseURL    string
	SheetID         string
	SheetGIDLatin   string
	SheetGIDEnglish string
	SyncMinutes     int
	ScoreExportPath string
	ScoreExportHrs  int
	SessionTTLHours int
	MaxTestTerms    int
	SyncWorkerCount int
	SyncQueueSize   int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:            envOr("ADDR", ":8080"),
		DBPath:          envOr("DB_PATH", "file:vocabdrill.db"),
		LogLevel:        envOr("LOG_LEVEL", "INFO"),
		SheetBaseURL:    envOr("SHEET_BASE_URL", "https://docs.google.com"),
		SheetID:         envOr("SHEET_ID", ""),
		SheetGIDLatin:   envOr("SHEET_GID_LATIN", "0"),
		SheetGIDEnglish: envOr("SHEET_GID_ENGLISH", "897548588"),
		SyncMinutes:     envIntOr("SYNC_INTERVAL_MINUTES", 60),
		ScoreExportPath: envOr("SCORE_EXPORT_PATH", ""),
		ScoreExportHrs:  envIntOr("SCORE_EXPORT_HOURS", 24),
		SessionTTLHours: envIntOr("SESSION_TTL_HOURS", 10),
		MaxTestTerms:    envIntOr("MAX_TEST_TERMS", 10000),
		SyncWorkerCount: envIntOr("SYNC_WORKER_COUNT", 1),
		SyncQueueSize:   envIntOr("SYNC_QUEUE_SIZE", 16),
	}
}

// Validate checks the configuration for values the server cannot start
// with. All problems are reported at once.
func (cfg Config) Validate() error {
	var problems []string

	if cfg.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if cfg.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	if cfg.SheetID == "" {
		problems = append(problems, "SHEET_ID cannot be empty")
	}
	switch strings.ToUpper(cfg.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL %q is not a valid level", cfg.LogLevel))
	}
	if cfg.SyncMinutes <= 0 {
		problems = append(problems, "SYNC_INTERVAL_MINUTES must be positive")
	}
	if cfg.ScoreExportPath != "" && cfg.ScoreExportHrs <= 0 {
		problems = append(problems, "SCORE_EXPORT_HOURS must be positive")
	}
	if cfg.SessionTTLHours <= 0 {
		problems = append(problems, "SESSION_TTL_HOURS must be positive")
	}
	if cfg.MaxTestTerms <= 0 {
		problems = append(problems, "MAX_TEST_TERMS must be positive")
	}
	if cfg.SyncWorkerCount <= 0 {
		problems = append(problems, "SYNC_WORKER_COUNT must be positive")
	}
	if cfg.SyncQueueSize <= 0 {
		problems = append(problems, "SYNC_QUEUE_SIZE must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
