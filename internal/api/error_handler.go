package api

import (
	"encoding/json"
	gerrors "errors"
	"net/http"
	"strings"

	"github.com/jakob/vocabdrill/internal/errors"
	"github.com/jakob/vocabdrill/internal/logger"
)

// wantsJSON reports whether the response should be a JSON error body.
// The category endpoint is consumed by page scripts; everything else is
// a browser form flow unless the client asked for JSON.
func wantsJSON(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/categories") ||
		strings.Contains(r.Header.Get("Accept"), "application/json")
}

// handleError maps any error onto an HTTP response. Errors that are not
// AppErrors are treated as internal.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *errors.AppError
	if !gerrors.As(err, &appErr) {
		appErr = errors.NewInternalError(err)
	}

	log := logger.FromContext(r.Context())
	switch {
	case appErr.Status >= 500:
		log.Error("request failed: %v", appErr)
	default:
		log.Warn("request rejected: %v", appErr)
	}

	if wantsJSON(r) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(appErr.Status)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	http.Error(w, appErr.Message, appErr.Status)
}
