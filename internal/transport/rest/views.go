package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/heartmarshall/langassist/internal/audio"
	"github.com/heartmarshall/langassist/internal/domain"
	"github.com/heartmarshall/langassist/internal/service/view"
	"github.com/heartmarshall/langassist/pkg/ctxutil"
)

type sessionStore interface {
	Get(id uuid.UUID) *view.Session
}

// ViewHandler drives the task views of the caller's session.
type ViewHandler struct {
	sessions sessionStore
	maxBody  int64
	log      *slog.Logger
}

// NewViewHandler creates a ViewHandler. Submit bodies larger than maxBody
// bytes are rejected.
func NewViewHandler(sessions sessionStore, maxBody int64, logger *slog.Logger) *ViewHandler {
	return &ViewHandler{
		sessions: sessions,
		maxBody:  maxBody,
		log:      logger.With("handler", "view"),
	}
}

type submitRequest struct {
	Text string `json:"text"`
}

// submitResponse wraps a snapshot for every submit outcome except success.
type submitResponse struct {
	Skipped bool          `json:"skipped,omitempty"`
	Error   string        `json:"error,omitempty"`
	View    view.Snapshot `json:"view"`
}

// Submit handles POST /api/views/{view}/submit. It blocks until the task
// settles; the task keeps running if the client disconnects.
func (h *ViewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}

	var req submitRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxBody)).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("body exceeds %d bytes", tooLarge.Limit))
			return
		}
		handleError(h.log, w, r, domain.NewValidationError("body", "invalid JSON"))
		return
	}

	snap, err := c.Submit(r.Context(), req.Text)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, snap)
	case errors.Is(err, domain.ErrSkipped):
		writeJSON(w, http.StatusOK, submitResponse{Skipped: true, View: snap})
	case errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusConflict, submitResponse{Error: "request already in progress", View: snap})
	case errors.Is(err, domain.ErrStale):
		writeJSON(w, http.StatusConflict, submitResponse{Error: "request was superseded", View: snap})
	case snap.State == domain.StateFailed:
		writeJSON(w, http.StatusBadGateway, submitResponse{Error: snap.Error, View: snap})
	default:
		handleError(h.log, w, r, err)
	}
}

// Get handles GET /api/views/{view}.
func (h *ViewHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, c.Snapshot())
}

// Reset handles POST /api/views/{view}/reset.
func (h *ViewHandler) Reset(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, c.Reset())
}

// List handles GET /api/views.
func (h *ViewHandler) List(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.Snapshots())
}

// Audio handles GET /api/views/word-meaning/audio/{voice} and serves the
// pronunciation of the current result as WAV.
func (h *ViewHandler) Audio(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	voice := domain.Voice(r.PathValue("voice"))
	if !voice.IsValid() {
		handleError(h.log, w, r, domain.NewValidationError("voice", "must be uk or us"))
		return
	}

	c, err := s.View(domain.TaskDefineWord)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	a, err := c.Audio(voice)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	data, err := audio.EncodeWAV(a)
	if err != nil {
		handleError(h.log, w, r, fmt.Errorf("encode %s audio: %w", voice, err))
		return
	}

	w.Header().Set("Content-Type", audio.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(data) //nolint:errcheck
}

func (h *ViewHandler) session(w http.ResponseWriter, r *http.Request) (*view.Session, bool) {
	id, ok := ctxutil.SessionIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}
	return h.sessions.Get(id), true
}

func (h *ViewHandler) controller(w http.ResponseWriter, r *http.Request) (*view.Controller, bool) {
	s, ok := h.session(w, r)
	if !ok {
		return nil, false
	}
	c, err := s.View(domain.TaskKind(r.PathValue("view")))
	if err != nil {
		handleError(h.log, w, r, err)
		return nil, false
	}
	return c, true
}
