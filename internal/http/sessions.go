package http

import (
	"sync"

	"medassist/pkg"
)

// SessionRegistry holds the live session contexts for this process.  The
// presentation layer owns session lifecycle; the registry is just the
// per-process map from identifier to context.  Stored turns live in the
// database regardless, keyed by the session identifier.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*pkg.Session
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[string]*pkg.Session)}
}

// Create registers a fresh session and returns it.
func (r *SessionRegistry) Create() *pkg.Session {
	sess := pkg.NewSession()
	r.mu.Lock()
	r.sessions[sess.ID] = sess
	r.mu.Unlock()
	return sess
}

// Get returns the session for an identifier.  Unknown identifiers get a
// new context under the same id: the database may hold turns for a
// session this process has never seen.
func (r *SessionRegistry) Get(id string) *pkg.Session {
	r.mu.RLock()
	sess, ok := r.sessions[id]
	r.mu.RUnlock()
	if ok {
		return sess
	}
	sess = &pkg.Session{ID: id, Profile: map[string]any{}}
	r.mu.Lock()
	r.sessions[id] = sess
	r.mu.Unlock()
	return sess
}

// Reset swaps the session's identifier for a fresh one and re-registers
// it.  The old identifier's turns stay in the database but are no longer
// replayed.
func (r *SessionRegistry) Reset(id string) *pkg.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[id]
	if !ok {
		sess = &pkg.Session{ID: id, Profile: map[string]any{}}
	}
	delete(r.sessions, sess.ID)
	sess.Reset()
	r.sessions[sess.ID] = sess
	return sess
}
