package coordinator

import (
	"time"

	"github.com/google/uuid"
)

// connState is the per-connection mutable state owned by the coordinator.
// Other components reference connections by ID only.
type connState struct {
	id       string
	username string
	room     string // empty when not in a room
	joinedAt time.Time
}

// registry maps live connection IDs to their state. It has no lock of its
// own; the coordinator serializes all access.
type registry struct {
	conns map[string]*connState
}

func newRegistry() *registry {
	return &registry{conns: make(map[string]*connState)}
}

// register stores a new authenticated connection and returns its state.
// The caller has already verified the identity; an empty username is never
// stored (the unauthorized path rejects before reaching here).
func (r *registry) register(username string) *connState {
	conn := &connState{
		id:       uuid.NewString(),
		username: username,
		joinedAt: time.Now(),
	}
	r.conns[conn.id] = conn
	return conn
}

func (r *registry) get(id string) (*connState, bool) {
	conn, ok := r.conns[id]
	return conn, ok
}

func (r *registry) has(id string) bool {
	_, ok := r.conns[id]
	return ok
}

func (r *registry) unregister(id string) {
	delete(r.conns, id)
}

func (r *registry) count() int {
	return len(r.conns)
}
