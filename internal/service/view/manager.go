package view

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Manager keeps the sessions of connected clients in memory. Idle sessions
// expire after ttl and the least recently used are evicted beyond size.
type Manager struct {
	log      *slog.Logger
	svc      assistant
	mu       sync.Mutex
	sessions *expirable.LRU[uuid.UUID, *Session]
}

// NewManager creates a session manager.
func NewManager(logger *slog.Logger, svc assistant, size int, ttl time.Duration) *Manager {
	m := &Manager{
		log: logger.With("service", "view"),
		svc: svc,
	}
	m.sessions = expirable.NewLRU[uuid.UUID, *Session](size, m.onEvict, ttl)
	return m
}

func (m *Manager) onEvict(id uuid.UUID, s *Session) {
	m.log.Debug("session evicted", slog.String("session_id", id.String()))
	s.close()
}

// Create starts a new session.
func (m *Manager) Create() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := newSession(uuid.New(), m.svc, m.log)
	m.sessions.Add(s.ID, s)
	m.log.Info("session created", slog.String("session_id", s.ID.String()))
	return s
}

// Get returns the session with id, recreating it empty if it expired while
// its token is still valid. Every access extends the session's lifetime.
func (m *Manager) Get(id uuid.UUID) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions.Get(id)
	if !ok {
		m.sessions.Remove(id)
		s = newSession(id, m.svc, m.log)
		m.log.Info("session restored", slog.String("session_id", id.String()))
	}
	m.sessions.Add(id, s)
	return s
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	return m.sessions.Len()
}
