package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/", s.handleHome)
	r.Get("/categories", s.handleCategories)
	r.Post("/reload", s.handleReload)
	r.Post("/practice", s.handlePractice)
	r.Get("/review-failures", s.handleReviewFailures)
	r.Post("/test", s.handleStartTest)
	r.Get("/testing", s.handleTesting)
	r.Post("/testing/reveal", s.handleReveal)
	r.Post("/testing/answer", s.handleAnswer)
	r.Post("/testing/direction", s.handleSwitchDirection)
	r.Get("/scores/export", s.handleScoresExport)
	r.Get("/health", s.handleHealth)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))
	return r
}
