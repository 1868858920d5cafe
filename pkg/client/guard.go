package client

import (
	"sync"

	apperrors "salongate/pkg/errors"
)

// ActionGuard enforces at most one outstanding mutating request per entity:
// the debounce-by-disable rule. A second attempt while the first is still in
// flight returns a conflict without touching the network, so a double click
// can never cause a duplicate submission.
type ActionGuard struct {
	mu       sync.Mutex
	inflight map[string]bool
}

func NewActionGuard() *ActionGuard {
	return &ActionGuard{
		inflight: make(map[string]bool),
	}
}

// Do runs fn while holding the key, unless another call already holds it.
func (g *ActionGuard) Do(key string, fn func() error) error {
	if !g.begin(key) {
		return apperrors.Conflict("another action on this appointment is still in progress")
	}
	defer g.end(key)
	return fn()
}

// Busy reports whether a request for the key is outstanding.
func (g *ActionGuard) Busy(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.inflight[key]
}

func (g *ActionGuard) begin(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.inflight[key] {
		return false
	}
	g.inflight[key] = true
	return true
}

func (g *ActionGuard) end(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inflight, key)
}
