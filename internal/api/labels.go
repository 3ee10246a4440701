package api

import "github.com/jakob/vocabdrill/internal/models"

// languageLabels holds the page labels for one card, depending on which
// side of the card is shown first.
type languageLabels struct {
	Language    string
	Term        string
	Translation string
	ShowComment bool
}

// labelsFor picks the card labels for a language. When the translation
// side is queried first the term/translation labels swap, so the page
// always names the side the user is looking at. Comments (declensions,
// genders) only exist for the non-English sheets.
func labelsFor(language string, showTerm bool) languageLabels {
	l := languageLabels{
		Language:    language,
		Term:        "Term",
		Translation: "Translation",
		ShowComment: language != models.LanguageEnglish,
	}

	switch language {
	case models.LanguageLatin, models.LanguageEnglish:
		if showTerm {
			l.Term = language
			l.Translation = "Deutsch"
		} else {
			l.Term = "Deutsch"
			l.Translation = language
		}
	}
	return l
}
