package mywebapi

import (
	"sync"
)

// OpenRequestTracker is the set of resource identities currently being
// fetched. It exists to suppress duplicate concurrent fetches: a resource is
// a member from the moment its fetch is dispatched until the completion
// (success, failure or timeout) has been processed.
type OpenRequestTracker struct {
	mu   sync.Mutex
	open map[string]struct{}
}

// NewOpenRequestTracker creates an empty tracker.
func NewOpenRequestTracker() *OpenRequestTracker {
	return &OpenRequestTracker{
		open: make(map[string]struct{}),
	}
}

// IsOpen reports whether a fetch for key is currently in flight.
func (t *OpenRequestTracker) IsOpen(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.open[key]
	return ok
}

// StoreRequest marks key as in flight. The check and the mark are one
// critical section: it returns false when key was already open, so of any
// number of concurrent callers exactly one wins the dispatch.
func (t *OpenRequestTracker) StoreRequest(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.open[key]; ok {
		return false
	}
	t.open[key] = struct{}{}
	return true
}

// RemoveRequest unmarks key. Must be called exactly once per dispatched
// fetch, on every exit path; a stuck entry would starve the resource forever.
func (t *OpenRequestTracker) RemoveRequest(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.open, key)
}

// Len returns the number of requests currently in flight.
func (t *OpenRequestTracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.open)
}
