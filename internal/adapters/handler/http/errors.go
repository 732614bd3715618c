package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vncsmyrnk/ballotbox/internal/core/domain"
)

// writeError maps domain sentinels to status codes. Anything unrecognised is
// logged and reported without its details.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredential):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrCandidateNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateCredential),
		errors.Is(err, domain.ErrDuplicateCandidate),
		errors.Is(err, domain.ErrAlreadyVoted):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrStorageFailure):
		slog.Error("storage failure", "method", r.Method, "path", r.URL.Path, "error", err)
		http.Error(w, domain.ErrStorageFailure.Error(), http.StatusServiceUnavailable)
		return
	default:
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
