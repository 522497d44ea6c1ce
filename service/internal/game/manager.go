// internal/game/manager.go
package game

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// DefaultMaxSessions is the session limit of NewManager.
const DefaultMaxSessions = 1000

// Manager tracks the sessions served by this process. Once it holds more than
// Limit sessions, Add evicts finished ones, oldest first.
type Manager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	Limit    int // 0 means unlimited
}

// NewManager creates an empty session manager holding up to DefaultMaxSessions.
func NewManager() *Manager {
	return &Manager{sessions: make(map[uuid.UUID]*Session), Limit: DefaultMaxSessions}
}

// Add registers s under its ID.
func (m *Manager) Add(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	m.evict()
}

// evict drops the oldest finished sessions until the manager is within its
// limit. Running sessions are never dropped.
// Assumes m.mu is held by caller.
func (m *Manager) evict() {
	if m.Limit <= 0 || len(m.sessions) <= m.Limit {
		return
	}
	var done []*Session
	for _, s := range m.sessions {
		if _, over := s.Winner(); over {
			done = append(done, s)
		}
	}
	sort.Slice(done, func(i, j int) bool { return done[i].CreatedAt.Before(done[j].CreatedAt) })
	for _, s := range done {
		if len(m.sessions) <= m.Limit {
			return
		}
		delete(m.sessions, s.ID)
	}
}

// Get returns a session by ID.
func (m *Manager) Get(id uuid.UUID) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Remove forgets a session.
func (m *Manager) Remove(id uuid.UUID) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// List returns every session, oldest first.
func (m *Manager) List() []*Session {
	m.mu.RLock()
	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	m.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}
