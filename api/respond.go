package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"log/slog"

	"github.com/rynvlabs/cms/pkg/content"
)

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", slog.Any("err", err))
	}
}

// writeError maps the content error taxonomy to HTTP statuses. Anything
// outside the taxonomy is an infrastructure failure: logged, opaque 500.
func writeError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, content.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, content.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, content.ErrInvalid):
		status = http.StatusBadRequest
	default:
		logger.Error("request failed", slog.Any("err", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{"error": err.Error()}, status)
}
