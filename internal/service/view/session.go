package view

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/langassist/internal/domain"
)

// Session holds the three task views of one client.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time

	views map[domain.TaskKind]*Controller
	hub   *hub
}

func newSession(id uuid.UUID, svc assistant, logger *slog.Logger) *Session {
	s := &Session{
		ID:        id,
		CreatedAt: time.Now(),
		views:     make(map[domain.TaskKind]*Controller, len(domain.TaskKinds)),
		hub:       newHub(),
	}
	log := logger.With("session_id", id.String())
	for _, kind := range domain.TaskKinds {
		s.views[kind] = newController(kind, svc, log, s.hub.publish)
	}
	return s
}

// View returns the controller of the named view.
func (s *Session) View(kind domain.TaskKind) (*Controller, error) {
	c, ok := s.views[kind]
	if !ok {
		return nil, fmt.Errorf("view %q: %w", kind, domain.ErrNotFound)
	}
	return c, nil
}

// Snapshots returns the state of every view in display order.
func (s *Session) Snapshots() []Snapshot {
	out := make([]Snapshot, 0, len(domain.TaskKinds))
	for _, kind := range domain.TaskKinds {
		out = append(out, s.views[kind].Snapshot())
	}
	return out
}

// Watch subscribes to view transitions. The channel is closed by cancel
// or when the session is evicted.
func (s *Session) Watch() (<-chan Snapshot, func()) {
	return s.hub.subscribe()
}

// Watchers returns the number of active subscriptions.
func (s *Session) Watchers() int { return s.hub.len() }

func (s *Session) close() { s.hub.close() }
