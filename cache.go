package mywebapi

import (
	"sync"
	"time"
)

// ResponseCache maps resource identities to responses with an absolute
// expiration per entry. Expired entries are swept lazily at the start of
// every read (Has/Get); there is no background timer. It is safe for
// concurrent use: the entry store and the expiration store are mutated under
// one mutex per operation, so a key is never observable in one but not the
// other.
type ResponseCache struct {
	mu          sync.Mutex
	entries     map[string]*Response
	expireTimes map[string]time.Time

	// now is the clock used for expiration decisions; replaceable in tests.
	now func() time.Time
}

// NewResponseCache creates an empty response cache.
func NewResponseCache() *ResponseCache {
	return &ResponseCache{
		entries:     make(map[string]*Response),
		expireTimes: make(map[string]time.Time),
		now:         time.Now,
	}
}

// Store inserts or overwrites the entry for key, valid for ttl from now.
func (c *ResponseCache) Store(key string, resp *Response, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = resp
	c.expireTimes[key] = c.now().Add(ttl)
}

// Has sweeps expired entries, then reports whether key is cached. Never true
// for an expired key.
func (c *ResponseCache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sweepLocked()
	_, ok := c.entries[key]
	return ok
}

// Get sweeps expired entries, then returns the cached response for key.
// Never returns an expired entry.
func (c *ResponseCache) Get(key string) (*Response, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sweepLocked()
	resp, ok := c.entries[key]
	return resp, ok
}

// Size returns the raw number of tracked entries. Entries that expired since
// the last sweep are still counted; Size is an approximation, not a count of
// live entries.
func (c *ResponseCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Remove deletes the entry and its expiration record. No-op when absent.
func (c *ResponseCache) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	delete(c.expireTimes, key)
}

// Clear empties the cache.
func (c *ResponseCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*Response)
	c.expireTimes = make(map[string]time.Time)
}

// sweepLocked removes every expired entry. Collect first, remove after, all
// inside the caller's critical section, so concurrent readers see either the
// pre-sweep or the post-sweep state, never a partial one.
func (c *ResponseCache) sweepLocked() {
	if len(c.expireTimes) == 0 {
		return
	}
	now := c.now()
	var expired []string
	for key, expiresAt := range c.expireTimes {
		if expiresAt.Before(now) {
			expired = append(expired, key)
		}
	}
	for _, key := range expired {
		delete(c.entries, key)
		delete(c.expireTimes, key)
	}
}
