package mywebapi

import (
	"sync"
	"time"
)

// ContentCache groups cached resource identities under logical content names
// so that all responses belonging to one kind of content can be invalidated
// together. The authoritative entries live in the embedded ResponseCache;
// the content index only records which keys belong to which name.
//
// Resource keys are globally unique across content names (they derive from
// the full request identity), so no collision handling exists between names.
type ContentCache struct {
	mu        sync.Mutex
	responses *ResponseCache
	contents  map[string]map[string]struct{}
}

// NewContentCache creates an empty content-keyed cache.
func NewContentCache() *ContentCache {
	return &ContentCache{
		responses: NewResponseCache(),
		contents:  make(map[string]map[string]struct{}),
	}
}

// Add caches resp under key for ttl and records key as belonging to
// contentName.
func (c *ContentCache) Add(contentName, key string, resp *Response, ttl time.Duration) {
	c.responses.Store(key, resp, ttl)

	c.mu.Lock()
	defer c.mu.Unlock()
	keys, ok := c.contents[contentName]
	if !ok {
		keys = make(map[string]struct{})
		c.contents[contentName] = keys
	}
	keys[key] = struct{}{}
}

// HasResponse reports whether a fresh response is cached for key. The content
// name is informational; the resource identity alone is the cache key.
func (c *ContentCache) HasResponse(contentName, key string) bool {
	return c.responses.Has(key)
}

// GetResponse returns the fresh cached response for key, if any. As with
// HasResponse the lookup is by key only.
func (c *ContentCache) GetResponse(contentName, key string) (*Response, bool) {
	return c.responses.Get(key)
}

// RemoveAll removes every response recorded under contentName and clears its
// key list. Unknown content names are a no-op.
func (c *ContentCache) RemoveAll(contentName string) {
	c.mu.Lock()
	keys := c.contents[contentName]
	delete(c.contents, contentName)
	c.mu.Unlock()

	for key := range keys {
		c.responses.Remove(key)
	}
}

// Clear empties the response cache and the content index.
func (c *ContentCache) Clear() {
	c.mu.Lock()
	c.contents = make(map[string]map[string]struct{})
	c.mu.Unlock()

	c.responses.Clear()
}

// Size returns the raw number of cached responses, including entries that
// expired since the last sweep.
func (c *ContentCache) Size() int {
	return c.responses.Size()
}
