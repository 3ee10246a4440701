package sheets

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/jakob/vocabdrill/internal/models"
)

// ParseTerms reads one sheet tab in CSV form. The first record carries
// the column headers and the first data row is a formatting row the
// sheet keeps for itself, so both are skipped. Rows without a term are
// dropped and an empty category inherits the one above it, matching how
// the sheet is maintained (category written once per block).
func ParseTerms(r io.Reader, language string) ([]models.Term, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	if _, ok := cols[models.ColTerm]; !ok {
		return nil, fmt.Errorf("sheet has no %q column", models.ColTerm)
	}

	field := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var (
		terms        []models.Term
		firstDataRow = true
		prevCategory string
	)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if firstDataRow {
			firstDataRow = false
			continue
		}

		term := field(record, models.ColTerm)
		category := field(record, models.ColCategory)
		if category == "" {
			category = prevCategory
		}
		prevCategory = category

		if term == "" {
			continue
		}

		terms = append(terms, models.Term{
			Term:        term,
			Comment:     field(record, models.ColComment),
			Translation: field(record, models.ColTranslation),
			Category:    category,
			Language:    language,
		})
	}
	return terms, nil
}
