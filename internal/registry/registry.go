// Package registry tracks which user is reachable on which live realtime
// connection. State is process-local: a restart drops everything and clients
// are expected to reconnect, so there is no durability and no persistence.
package registry

import "sync"

// Registry is the live subject → connections map.
// Single-instance model: all lookups are in-process.
// For multi-instance: replace with a Redis-backed presence cache.
type Registry struct {
	mu        sync.RWMutex
	bySubject map[string]map[string]struct{} // subjectID -> set of connectionID
	byConn    map[string]string              // connectionID -> subjectID
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		bySubject: make(map[string]map[string]struct{}),
		byConn:    make(map[string]string),
	}
}

// Register records a live connection for a subject. Registering the same
// pair twice is a no-op.
func (r *Registry) Register(subjectID, connectionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.bySubject[subjectID] == nil {
		r.bySubject[subjectID] = make(map[string]struct{})
	}
	r.bySubject[subjectID][connectionID] = struct{}{}
	r.byConn[connectionID] = subjectID
}

// Unregister drops a connection by its id. Unknown ids are ignored:
// disconnects can race with shutdown and double-unregister is harmless.
func (r *Registry) Unregister(connectionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	subjectID, ok := r.byConn[connectionID]
	if !ok {
		return
	}
	delete(r.byConn, connectionID)

	conns := r.bySubject[subjectID]
	delete(conns, connectionID)
	if len(conns) == 0 {
		delete(r.bySubject, subjectID)
	}
}

// ConnectionsFor returns the subject's current connection ids. The slice is
// a copy and reflects state at call time only.
func (r *Registry) ConnectionsFor(subjectID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conns := r.bySubject[subjectID]
	if len(conns) == 0 {
		return nil
	}
	out := make([]string, 0, len(conns))
	for id := range conns {
		out = append(out, id)
	}
	return out
}

// IsReachable reports whether the subject has at least one live connection.
func (r *Registry) IsReachable(subjectID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bySubject[subjectID]) > 0
}

// Count returns the total number of live connections.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byConn)
}
