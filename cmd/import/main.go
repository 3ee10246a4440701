// Command import loads vocabulary from a local workbook or CSV file into
// the term store, for offline use when the Google Sheet is unreachable.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/jakob/vocabdrill/internal/config"
	"github.com/jakob/vocabdrill/internal/db"
	"github.com/jakob/vocabdrill/internal/importer"
	"github.com/jakob/vocabdrill/internal/logger"
	"github.com/jakob/vocabdrill/internal/models"
	"github.com/jakob/vocabdrill/internal/repository/sqlite"
)

func main() {
	var (
		filePath = flag.String("file", "", "path to the .xlsx or .csv file to import")
		language = flag.String("language", models.LanguageLatin, "language tag for the imported terms")
		sheet    = flag.String("sheet", "Sheet1", "workbook sheet name (.xlsx only)")
		startRow = flag.Int("start-row", 2, "first data row, 1-based")
	)
	flag.Parse()

	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	if *filePath == "" {
		log.Error("missing required -file flag")
		flag.Usage()
		os.Exit(2)
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer database.Close()

	importCfg := importer.DefaultConfig(*filePath, *language)
	importCfg.SheetName = *sheet
	importCfg.StartRow = *startRow

	ctx := logger.NewContext(context.Background(), log)
	result, err := importer.ImportTerms(ctx, importCfg, sqlite.NewTermRepository(database.DB))
	if err != nil {
		log.Error("import failed: %v", err)
		os.Exit(1)
	}

	log.Info("import finished: %d rows, %d imported, %d skipped", result.TotalRows, result.Imported, result.Skipped)
	for _, msg := range result.Errors {
		log.Warn("import issue: %s", msg)
	}
}
