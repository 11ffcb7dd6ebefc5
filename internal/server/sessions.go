package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/averyk/creator-onboard/internal/wizard"
)

// Session is one live onboarding wizard instance. The controller is
// single-writer, so every handler takes the session mutex before touching it.
// Import, search, and submit hold the mutex for their full duration; the
// controller's own busy flags reject overlapping attempts from other
// goroutines that arrive once the mutex is released between requests.
type Session struct {
	ID        uuid.UUID
	CreatorID uuid.UUID
	Mode      wizard.Mode
	CreatedAt time.Time

	mu         sync.Mutex
	controller *wizard.Controller
}

// Lock acquires the session for exclusive controller access.
func (s *Session) Lock() *wizard.Controller {
	s.mu.Lock()
	return s.controller
}

// Unlock releases the session.
func (s *Session) Unlock() {
	s.mu.Unlock()
}

// SessionRegistry holds live onboarding sessions keyed by session ID.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewSessionRegistry creates an empty registry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Add registers a new session and returns it.
func (r *SessionRegistry) Add(creatorID uuid.UUID, mode wizard.Mode, ctrl *wizard.Controller) *Session {
	session := &Session{
		ID:         uuid.New(),
		CreatorID:  creatorID,
		Mode:       mode,
		CreatedAt:  time.Now(),
		controller: ctrl,
	}

	r.mu.Lock()
	r.sessions[session.ID] = session
	r.mu.Unlock()

	return session
}

// Get returns the session with the given ID, or nil if it does not exist.
func (r *SessionRegistry) Get(id uuid.UUID) *Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[id]
}

// Remove deletes a session from the registry. Removing an unknown ID is a
// no-op.
func (r *SessionRegistry) Remove(id uuid.UUID) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Count returns the number of live sessions.
func (r *SessionRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
