// Package userlock serializes request handling per user id.
package userlock

import "sync"

type entry struct {
	mu   sync.Mutex
	refs int
}

// Registry hands out one mutual-exclusion handle per user id. Entries are
// created on first use and removed when the last holder or waiter
// releases, so the map tracks in-flight users rather than growing with
// every user id ever seen.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// Acquire blocks until the caller holds the lock for id, then returns the
// release function. Release is safe to call more than once; callers defer
// it immediately after acquiring so every exit path, panics included,
// unlocks.
func (r *Registry) Acquire(id string) (release func()) {
	r.mu.Lock()
	e, ok := r.entries[id]
	if !ok {
		e = &entry{}
		r.entries[id] = e
	}
	e.refs++
	r.mu.Unlock()

	e.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Unlock()
			r.mu.Lock()
			e.refs--
			if e.refs == 0 {
				delete(r.entries, id)
			}
			r.mu.Unlock()
		})
	}
}

// Active returns the number of user ids with a holder or waiter in flight.
func (r *Registry) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
