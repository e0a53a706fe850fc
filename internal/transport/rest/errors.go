package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/langassist/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

// handleError maps domain errors to status codes. Unmapped errors are
// logged and hidden behind a generic message.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrAudioUnavailable):
		writeError(w, http.StatusNotFound, "audio unavailable")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "request already in progress")
	case errors.Is(err, domain.ErrStale):
		writeError(w, http.StatusConflict, "request was superseded")
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
