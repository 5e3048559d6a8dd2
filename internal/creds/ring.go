// Package creds holds the rotating pool of provider credentials.
package creds

import (
	"errors"
	"sync"
)

// ErrEmptyPool means the ring was built without any credentials. The
// process refuses to start in that state.
var ErrEmptyPool = errors.New("credential pool is empty")

// Ring is an ordered credential pool with a current position. Current and
// Advance are safe for concurrent use; a request reads the position once
// and keeps that credential for its whole provider call, so a rotation
// triggered by another request never switches keys mid-call.
type Ring struct {
	mu   sync.RWMutex
	keys []string
	idx  int
}

// NewRing builds a ring over the given credentials, preserving order.
func NewRing(keys []string) (*Ring, error) {
	if len(keys) == 0 {
		return nil, ErrEmptyPool
	}
	owned := make([]string, len(keys))
	copy(owned, keys)
	return &Ring{keys: owned}, nil
}

// Current returns the credential at the current position.
func (r *Ring) Current() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.keys[r.idx]
}

// Advance moves the position to the next credential, wrapping at the end,
// and returns the credential now current.
func (r *Ring) Advance() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.idx = (r.idx + 1) % len(r.keys)
	return r.keys[r.idx]
}

// Size returns the number of credentials in the pool.
func (r *Ring) Size() int {
	return len(r.keys)
}
