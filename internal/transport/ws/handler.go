// Package ws pushes view transitions of a session to websocket clients.
package ws

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/heartmarshall/langassist/internal/service/view"
	"github.com/heartmarshall/langassist/pkg/ctxutil"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// Event types.
const (
	EventSnapshot = "snapshot"
)

// Event is one message sent to the client.
type Event struct {
	Type string        `json:"type"`
	View view.Snapshot `json:"view"`
}

type sessionStore interface {
	Get(id uuid.UUID) *view.Session
}

// Handler serves GET /ws/views. On connect it sends the current snapshot
// of every view, then one snapshot per transition. Client messages are
// ignored; submits go through the REST API.
type Handler struct {
	sessions sessionStore
	upgrader websocket.Upgrader
	log      *slog.Logger
}

// NewHandler creates a Handler. checkOrigin guards the upgrade; nil
// accepts same-origin requests only.
func NewHandler(sessions sessionStore, checkOrigin func(r *http.Request) bool, logger *slog.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     checkOrigin,
		},
		log: logger.With("handler", "ws"),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := ctxutil.SessionIDFromCtx(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	session := h.sessions.Get(id)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		h.log.WarnContext(r.Context(), "websocket upgrade failed", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	// Subscribe before the initial snapshots so no transition is lost.
	updates, cancel := session.Watch()
	defer cancel()

	log := h.log.With("session_id", id.String())
	log.DebugContext(r.Context(), "websocket connected")

	for _, s := range session.Snapshots() {
		if err := h.send(conn, s); err != nil {
			log.DebugContext(r.Context(), "websocket write failed", slog.String("error", err.Error()))
			return
		}
	}

	closed := readLoop(conn)
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case s, ok := <-updates:
			if !ok {
				// Session evicted.
				writeClose(conn, websocket.CloseGoingAway, "session expired")
				return
			}
			if err := h.send(conn, s); err != nil {
				log.DebugContext(r.Context(), "websocket write failed", slog.String("error", err.Error()))
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-closed:
			log.DebugContext(r.Context(), "websocket closed by client")
			return
		case <-r.Context().Done():
			writeClose(conn, websocket.CloseGoingAway, "server shutting down")
			return
		}
	}
}

func (h *Handler) send(conn *websocket.Conn, s view.Snapshot) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
	return conn.WriteJSON(Event{Type: EventSnapshot, View: s})
}

// readLoop drains client frames so control messages are processed and
// returns a channel closed when the connection fails or closes.
func readLoop(conn *websocket.Conn) <-chan struct{} {
	done := make(chan struct{})
	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()
	return done
}

func writeClose(conn *websocket.Conn, code int, text string) {
	msg := websocket.FormatCloseMessage(code, text)
	conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait)) //nolint:errcheck
}
