package mywebapi

import (
	"sync"
)

// Listener receives notifications about request resolutions and content
// invalidations. Callbacks may be invoked from fetch workers concurrently;
// implementations must be safe for that. Dispatch order across listeners is
// unspecified.
type Listener interface {
	// OnRequestResolved is called when a request finishes, whether it
	// completed from cache, completed from a fetch, or failed. Inspect the
	// request's completion state to tell which.
	OnRequestResolved(req Request)

	// OnContentInvalidated is called when all cached responses under a
	// content name have been invalidated.
	OnContentInvalidated(contentName string)
}

// listenerRegistry is a concurrency-safe collection of listeners.
type listenerRegistry struct {
	mu        sync.RWMutex
	listeners []Listener
}

func newListenerRegistry() *listenerRegistry {
	return &listenerRegistry{}
}

func (r *listenerRegistry) add(l Listener) {
	if l == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, l)
}

func (r *listenerRegistry) snapshot() []Listener {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Listener, len(r.listeners))
	copy(out, r.listeners)
	return out
}

func (r *listenerRegistry) notifyResolved(req Request) {
	for _, l := range r.snapshot() {
		l.OnRequestResolved(req)
	}
}

func (r *listenerRegistry) notifyContentInvalidated(contentName string) {
	for _, l := range r.snapshot() {
		l.OnContentInvalidated(contentName)
	}
}
