package api

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strings"

	"github.com/jakob/vocabdrill/internal/errors"
	"github.com/jakob/vocabdrill/internal/logger"
	"github.com/jakob/vocabdrill/internal/models"
)

// handleHome renders the language and category selection page.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	languages := []string{models.LanguageLatin, models.LanguageEnglish}

	synced := map[string]*models.SyncState{}
	for _, language := range languages {
		state, err := s.Vocab.LastSync(r.Context(), language)
		if err != nil {
			// the page still works without sync info
			logger.FromContext(r.Context()).Warn("failed to load sync state for %s: %v", language, err)
			continue
		}
		synced[language] = state
	}

	s.render(w, r, "index.html", pageData{
		"Languages": languages,
		"Synced":    synced,
	})
}

// handleCategories returns the categories of a language as JSON, in
// sheet order.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	language := r.URL.Query().Get("language")

	categories := []string{}
	if language != "" {
		var err error
		categories, err = s.Vocab.Categories(r.Context(), language)
		if err != nil {
			handleError(w, r, err)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"categories": categories})
}

// handleReload refetches the sheets and drops the caller's test session,
// since its term keys may no longer exist.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if sess := s.testSession(r); sess != nil {
		s.Sessions.Delete(sess.ID)
	}
	clearSessionCookie(w)

	if err := s.Vocab.Sync(r.Context()); err != nil {
		handleError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// formCategories splits the comma-separated category field. The home page
// posts the selection as one field to keep the form logic simple.
func formCategories(r *http.Request) []string {
	raw := r.FormValue("categories")
	if raw == "" {
		return nil
	}
	var categories []string
	for _, c := range strings.Split(raw, ",") {
		if c = strings.TrimSpace(c); c != "" {
			categories = append(categories, c)
		}
	}
	return categories
}

// handlePractice renders all selected terms grouped by category.
func (s *Server) handlePractice(w http.ResponseWriter, r *http.Request) {
	language := r.FormValue("language")
	if language == "" {
		handleError(w, r, errors.NewBadRequestError("language is required"))
		return
	}

	groups, err := s.Vocab.PracticeSet(r.Context(), language, formCategories(r))
	if err != nil {
		handleError(w, r, err)
		return
	}

	s.render(w, r, "practice.html", pageData{
		"Header":      "Üben",
		"Language":    language,
		"Groups":      groups,
		"ShowComment": language != models.LanguageEnglish,
	})
}

// handleReviewFailures renders the terms answered wrong in the current
// test session, grouped by category like the practice page.
func (s *Server) handleReviewFailures(w http.ResponseWriter, r *http.Request) {
	sess := s.testSession(r)
	if sess == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	terms, err := s.Vocab.Terms(r.Context(), sess.Language, nil)
	if err != nil {
		handleError(w, r, err)
		return
	}

	wrong := make(map[string]bool, len(sess.WrongKeys))
	for _, key := range sess.WrongKeys {
		wrong[key] = true
	}

	var groups []models.CategoryGroup
	index := map[string]int{}
	for _, term := range terms {
		if !wrong[term.Key()] {
			continue
		}
		i, ok := index[term.Category]
		if !ok {
			i = len(groups)
			index[term.Category] = i
			groups = append(groups, models.CategoryGroup{Category: term.Category})
		}
		groups[i].Terms = append(groups[i].Terms, term)
	}

	s.render(w, r, "practice.html", pageData{
		"Header":      "Fehler wiederholen",
		"Language":    sess.Language,
		"Groups":      groups,
		"ShowComment": sess.Language != models.LanguageEnglish,
	})
}

// handleStartTest builds a test session from the selection and redirects
// into the card loop.
func (s *Server) handleStartTest(w http.ResponseWriter, r *http.Request) {
	language := r.FormValue("language")
	if language == "" {
		handleError(w, r, errors.NewBadRequestError("language is required"))
		return
	}

	sess, err := s.Tests.BuildSession(r.Context(), language, formCategories(r), s.MaxTestTerms)
	if err != nil {
		handleError(w, r, err)
		return
	}

	// drop any previous session before starting over
	if old := s.testSession(r); old != nil {
		s.Sessions.Delete(old.ID)
	}

	id := s.Sessions.Create(sess)
	setSessionCookie(w, id, s.SessionTTL)
	http.Redirect(w, r, "/testing", http.StatusSeeOther)
}

// handleTesting renders the current card. A fresh round (or a fresh
// session) shuffles the order once; re-renders of the same card do not.
func (s *Server) handleTesting(w http.ResponseWriter, r *http.Request) {
	s.renderTesting(w, r, false)
}

// handleReveal re-renders the current card with the hidden side shown.
func (s *Server) handleReveal(w http.ResponseWriter, r *http.Request) {
	s.renderTesting(w, r, true)
}

func (s *Server) renderTesting(w http.ResponseWriter, r *http.Request, reveal bool) {
	sess := s.testSession(r)
	if sess == nil || len(sess.TermKeys) == 0 {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	// Shuffle at the start of every round. ShuffledAt pins the shuffle to
	// the answer count, so revealing or reloading card one of a round
	// keeps the order stable.
	if len(sess.Order) == 0 || (sess.Position() == 0 && sess.Answered() != sess.ShuffledAt) {
		sess.Order = rand.Perm(len(sess.TermKeys))
		sess.ShuffledAt = sess.Answered()
		s.Sessions.Put(sess.ID, sess)
	}

	term, err := s.Tests.CurrentTerm(r.Context(), sess)
	if err != nil {
		handleError(w, r, err)
		return
	}

	labels := labelsFor(sess.Language, sess.ShowTerm)
	s.render(w, r, "test.html", pageData{
		"Term":            term,
		"Labels":          labels,
		"ShowTerm":        sess.ShowTerm,
		"ShowTranslation": reveal,
		"CorrectCount":    sess.Correct,
		"WrongCount":      sess.Wrong,
		"Position":        sess.Position(),
		"Total":           len(sess.TermKeys),
	})
}

// handleAnswer records the answer for the current card and moves on.
func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	sess := s.testSession(r)
	if sess == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	correct := r.FormValue("answer_correct") == "Richtig"
	if err := s.Tests.RecordAnswer(r.Context(), sess, correct); err != nil {
		handleError(w, r, err)
		return
	}
	s.Sessions.Put(sess.ID, sess)

	http.Redirect(w, r, "/testing", http.StatusSeeOther)
}

// handleSwitchDirection flips which side of the cards is asked first.
func (s *Server) handleSwitchDirection(w http.ResponseWriter, r *http.Request) {
	sess := s.testSession(r)
	if sess == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	sess.ShowTerm = !sess.ShowTerm
	s.Sessions.Put(sess.ID, sess)

	http.Redirect(w, r, "/testing", http.StatusSeeOther)
}

// handleScoresExport downloads all stored scores as CSV.
func (s *Server) handleScoresExport(w http.ResponseWriter, r *http.Request) {
	data, err := s.Tests.ScoresCSV(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="scores.csv"`)
	w.Header().Set("Content-Length", fmt.Sprint(len(data)))
	w.Write(data)
}

// handleHealth reports liveness and the last sync per language.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	synced := map[string]any{}
	for _, language := range []string{models.LanguageLatin, models.LanguageEnglish} {
		state, err := s.Vocab.LastSync(r.Context(), language)
		if err != nil || state == nil {
			synced[language] = nil
			continue
		}
		synced[language] = map[string]any{
			"term_count": state.TermCount,
			"synced_at":  state.SyncedAt,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":   "ok",
		"sessions": s.Sessions.Len(),
		"synced":   synced,
	})
}
