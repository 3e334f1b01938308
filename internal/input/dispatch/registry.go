package dispatch

import (
	"sort"
	"sync"
)

// Handler is a callback invoked when a bound shortcut fires.
type Handler func()

type entry struct {
	handler Handler
	owner   any
}

// Registry maps callback ids to handlers. Registration is last-write-wins
// and entries may come and go at any time.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]entry
}

// NewRegistry creates an empty callback registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]entry),
	}
}

// Register installs h under id, replacing any previous handler.
// A nil handler is the same as Unregister.
func (r *Registry) Register(id string, h Handler) {
	r.RegisterOwned(id, nil, h)
}

// RegisterOwned is Register with an owner recorded against the entry, so
// the owner can later remove only the handlers it still holds. owner must
// be comparable; a pointer is typical.
func (r *Registry) RegisterOwned(id string, owner any, h Handler) {
	if h == nil {
		r.Unregister(id)
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[id] = entry{handler: h, owner: owner}
}

// UnregisterOwned removes the handler for id only if owner registered it
// and nobody has replaced it since. It reports whether a handler was removed.
func (r *Registry) UnregisterOwned(id string, owner any) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.handlers[id]
	if !ok || owner == nil || e.owner != owner {
		return false
	}
	delete(r.handlers, id)
	return true
}

// Unregister removes the handler for id. Removing an unknown id is a no-op.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handlers, id)
}

// Lookup returns the handler for id.
func (r *Registry) Lookup(id string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.handlers[id]
	return e.handler, ok
}

// IDs returns the registered ids in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.handlers))
	for id := range r.handlers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of registered handlers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}
