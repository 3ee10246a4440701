package api

import (
	"html/template"
	"net/http"
	"time"

	"github.com/jakob/vocabdrill/internal/logger"
	"github.com/jakob/vocabdrill/internal/services"
	"github.com/jakob/vocabdrill/internal/session"
)

type Server struct {
	Vocab        services.VocabService
	Tests        services.TestService
	Sessions     *session.Store
	Templates    *template.Template
	MaxTestTerms int
	SessionTTL   time.Duration
}

type pageData map[string]any

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	if data == nil {
		data = pageData{}
	}

	log := logger.FromContext(r.Context())
	if err := s.Templates.ExecuteTemplate(w, name, data); err != nil {
		log.Error("failed to render template %s: %v", name, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
