package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/langassist/internal/service/view"
)

type tokenIssuer interface {
	Issue(sessionID uuid.UUID) (string, time.Time, error)
}

type sessionCreator interface {
	Create() *view.Session
}

// SessionHandler starts client sessions.
type SessionHandler struct {
	tokens   tokenIssuer
	sessions sessionCreator
	log      *slog.Logger
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(tokens tokenIssuer, sessions sessionCreator, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		tokens:   tokens,
		sessions: sessions,
		log:      logger.With("handler", "session"),
	}
}

type sessionResponse struct {
	Token     string    `json:"token"`
	SessionID string    `json:"sessionId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Create handles POST /api/sessions.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Create()

	token, expiresAt, err := h.tokens.Issue(s.ID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, sessionResponse{
		Token:     token,
		SessionID: s.ID.String(),
		ExpiresAt: expiresAt,
	})
}
