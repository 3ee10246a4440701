package models

// Spreadsheet column headers, as they appear in the source sheet.
const (
	ColTerm        = "Fremdsprache"
	ColComment     = "Zusatz"
	ColTranslation = "Deutsch"
	ColCategory    = "Kategorie"
	ColLanguage    = "Sprache"
)

// Supported sheet languages.
const (
	LanguageLatin   = "Latein"
	LanguageEnglish = "Englisch"
)

// Term is one vocabulary entry. The foreign-language term doubles as the
// key under which its score is stored.
type Term struct {
	ID          int64  `json:"id"`
	Term        string `json:"term"`
	Comment     string `json:"comment"`
	Translation string `json:"translation"`
	Category    string `json:"category"`
	Language    string `json:"language"`
}

// Key returns the identifier a term's score is stored under.
func (t Term) Key() string {
	return t.Term
}

// TermFilter narrows term listings.
type TermFilter struct {
	Language   string
	Categories []string
	Limit      int
	Offset     int
}

// CategoryGroup is a category with its terms, in sheet order.
type CategoryGroup struct {
	Category string `json:"category"`
	Terms    []Term `json:"terms"`
}
