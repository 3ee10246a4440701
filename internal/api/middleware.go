package api

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/jakob/vocabdrill/internal/logger"
	"github.com/jakob/vocabdrill/internal/models"
)

const sessionCookieName = "test_session_id"

// testSession returns the caller's test session, or nil when there is
// none (no cookie, expired, or unknown id).
func (s *Server) testSession(r *http.Request) *models.TestSession {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	return s.Sessions.Get(cookie.Value)
}

func setSessionCookie(w http.ResponseWriter, id string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:    sessionCookieName,
		Value:   "",
		Path:    "/",
		Expires: time.Unix(0, 0),
		MaxAge:  -1,
	})
}

// statusWriter captures the status code and body size of a response.
type statusWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

func requestID(r *http.Request) string {
	if id := r.Header.Get("X-Request-ID"); id != "" {
		return id
	}
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// loggingMiddleware attaches a request-scoped logger to the context and
// logs every completed request with its status and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := requestID(r)
		log := logger.Default().WithFields(map[string]any{
			"request_id": id,
			"method":     r.Method,
			"path":       r.URL.Path,
		})
		w.Header().Set("X-Request-ID", id)

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(sw, r.WithContext(logger.NewContext(r.Context(), log)))

		log = log.WithFields(map[string]any{
			"status":      sw.status,
			"size":        sw.size,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		switch {
		case sw.status >= 500:
			log.Error("request completed")
		case sw.status >= 400:
			log.Warn("request completed")
		default:
			log.Info("request completed")
		}
	})
}

// recoveryMiddleware turns panics into 500s instead of dropped
// connections.
func recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.FromContext(r.Context()).Error("panic recovered: %v", rec)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
