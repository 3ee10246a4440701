package sheets_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakob/vocabdrill/internal/models"
	"github.com/jakob/vocabdrill/internal/sheets"
)

const sampleCSV = `Fremdsprache,Zusatz,Deutsch,Kategorie,Anmerkung
skip-me,,this row is sheet formatting,Ignored,
Salvē,,Sei gegrüßt,Latein: Salve,
pater,m.,der Vater,,
māter,f.,die Mutter,Latein: Das Kapitol,
,,no term here,,
filius,m.,der Sohn,,
`

func TestParseTerms(t *testing.T) {
	terms, err := sheets.ParseTerms(strings.NewReader(sampleCSV), models.LanguageLatin)
	require.NoError(t, err)
	require.Len(t, terms, 4)

	assert.Equal(t, "Salvē", terms[0].Term)
	assert.Equal(t, "Sei gegrüßt", terms[0].Translation)
	assert.Equal(t, "Latein: Salve", terms[0].Category)
	assert.Equal(t, models.LanguageLatin, terms[0].Language)

	assert.Equal(t, "pater", terms[1].Term)
	assert.Equal(t, "m.", terms[1].Comment)
	assert.Equal(t, "Latein: Salve", terms[1].Category, "empty category inherits the previous one")

	assert.Equal(t, "māter", terms[2].Term)
	assert.Equal(t, "Latein: Das Kapitol", terms[2].Category)

	assert.Equal(t, "filius", terms[3].Term)
	assert.Equal(t, "Latein: Das Kapitol", terms[3].Category)
}

func TestParseTerms_SkipsFirstDataRow(t *testing.T) {
	terms, err := sheets.ParseTerms(strings.NewReader(sampleCSV), models.LanguageLatin)
	require.NoError(t, err)

	for _, term := range terms {
		assert.NotEqual(t, "skip-me", term.Term)
	}
}

func TestParseTerms_EmptyInput(t *testing.T) {
	terms, err := sheets.ParseTerms(strings.NewReader(""), models.LanguageLatin)
	require.NoError(t, err)
	assert.Empty(t, terms)
}

func TestParseTerms_HeaderOnly(t *testing.T) {
	terms, err := sheets.ParseTerms(strings.NewReader("Fremdsprache,Zusatz,Deutsch,Kategorie\n"), models.LanguageLatin)
	require.NoError(t, err)
	assert.Empty(t, terms)
}

func TestParseTerms_MissingTermColumn(t *testing.T) {
	_, err := sheets.ParseTerms(strings.NewReader("A,B,C\n1,2,3\n"), models.LanguageLatin)
	require.Error(t, err)
	assert.Contains(t, err.Error(), models.ColTerm)
}

func TestParseTerms_ShortRecords(t *testing.T) {
	csv := "Fremdsprache,Zusatz,Deutsch,Kategorie\nformat-row\nager\n"
	terms, err := sheets.ParseTerms(strings.NewReader(csv), models.LanguageLatin)
	require.NoError(t, err)
	require.Len(t, terms, 1)
	assert.Equal(t, "ager", terms[0].Term)
	assert.Empty(t, terms[0].Translation)
}
