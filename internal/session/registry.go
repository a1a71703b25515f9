package session

import (
	"sort"
	"sync"
)

// Registry tracks live sessions by name. It is shared between the UI and
// transport layers; entries are references, never owned copies.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]Session)}
}

// Add registers s under its name, replacing any previous entry.
func (r *Registry) Add(s Session) {
	r.mu.Lock()
	r.sessions[s.Name()] = s
	r.mu.Unlock()
}

// Get returns the session registered under name, or nil.
func (r *Registry) Get(name string) Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[name]
}

// Remove drops the entry for name. The session itself is not disposed;
// other holders may still use it.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	delete(r.sessions, name)
	r.mu.Unlock()
}

// Names lists registered session names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.sessions))
	for n := range r.sessions {
		names = append(names, n)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}
