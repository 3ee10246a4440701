// Package importer loads vocabulary from a local workbook (.xlsx) or CSV
// file into the term store, as an offline alternative to the Google Sheet.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jakob/vocabdrill/internal/logger"
	"github.com/jakob/vocabdrill/internal/models"
	"github.com/jakob/vocabdrill/internal/repository"
)

// Config defines the import configuration
type Config struct {
	FilePath          string // Path to the Excel or CSV file
	Language          string // Language tag stored on every imported term
	TermColumn        string // Column with the foreign-language term
	CommentColumn     string // Column with the comment
	TranslationColumn string // Column with the translation
	CategoryColumn    string // Column with the category
	SheetName         string // Name of the sheet to import
	StartRow          int    // The row to start importing from (1-based index)
}

// DefaultConfig returns the default import configuration for a language.
func DefaultConfig(path, language string) Config {
	return Config{
		FilePath:          path,
		Language:          language,
		TermColumn:        "A",
		CommentColumn:     "B",
		TranslationColumn: "C",
		CategoryColumn:    "D",
		SheetName:         "Sheet1",
		StartRow:          2, // By default, start from the second row (skip header)
	}
}

// Result holds the outcome of an import operation
type Result struct {
	TotalRows int
	Imported  int
	Skipped   int
	Errors    []string
}

// ImportTerms imports vocabulary from an Excel or CSV file and replaces
// the stored terms for the configured language.
func ImportTerms(ctx context.Context, cfg Config, terms repository.TermRepository) (*Result, error) {
	log := logger.FromContext(ctx).WithPrefix("importer")

	if cfg.Language == "" {
		return nil, fmt.Errorf("importer: language is required")
	}

	var (
		rows [][]string
		err  error
	)
	if strings.ToLower(filepath.Ext(cfg.FilePath)) == ".csv" {
		rows, err = readCSV(cfg.FilePath)
	} else {
		rows, err = readWorkbook(cfg)
	}
	if err != nil {
		return nil, err
	}

	result := &Result{}
	parsed := make([]models.Term, 0, len(rows))
	prevCategory := ""
	for i, row := range rows {
		rowNum := i + 1
		if rowNum < cfg.StartRow {
			continue
		}
		result.TotalRows++

		term := cell(row, cfg.TermColumn)
		if term == "" {
			result.Skipped++
			continue
		}
		category := cell(row, cfg.CategoryColumn)
		if category == "" {
			category = prevCategory
		}
		prevCategory = category

		parsed = append(parsed, models.Term{
			Term:        term,
			Comment:     cell(row, cfg.CommentColumn),
			Translation: cell(row, cfg.TranslationColumn),
			Category:    category,
			Language:    cfg.Language,
		})
		result.Imported++
	}

	if err := terms.ReplaceForLanguage(ctx, cfg.Language, parsed); err != nil {
		log.Error("failed to store imported terms: %v", err)
		return nil, err
	}

	log.Info("imported %d terms for %s from %s (%d skipped)",
		result.Imported, cfg.Language, cfg.FilePath, result.Skipped)
	return result, nil
}

// cell resolves a column letter against a row, tolerating short rows.
func cell(row []string, column string) string {
	n, err := excelize.ColumnNameToNumber(column)
	if err != nil || n > len(row) {
		return ""
	}
	return strings.TrimSpace(row[n-1])
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}

func readWorkbook(cfg Config) ([][]string, error) {
	f, err := excelize.OpenFile(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(cfg.SheetName)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", cfg.SheetName, err)
	}
	return rows, nil
}
