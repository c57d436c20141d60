package exam

import (
	"sync"

	"github.com/google/uuid"
)

// Registry tracks live speaking sessions by id so the HTTP surface can
// address a session across turns. Sessions are never persisted; a settings
// save drops them all, and new ones pick up the new provider. The lock only
// guards the map; serializing turns within one session is the caller's duty.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]Session)}
}

// Add stores the session and returns its id.
func (r *Registry) Add(s Session) string {
	id := uuid.NewString()
	r.mu.Lock()
	r.sessions[id] = s
	r.mu.Unlock()
	return id
}

func (r *Registry) Get(id string) (Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	return s, ok
}

func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Reset drops every session. Called after a settings save.
func (r *Registry) Reset() {
	r.mu.Lock()
	r.sessions = make(map[string]Session)
	r.mu.Unlock()
}

// Len reports how many sessions are live.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
