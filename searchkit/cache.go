package searchkit

import (
	"fmt"
	"sync"
	"time"
)

// DefaultCacheTTL is the staleness window during which an identical query
// is served from cache instead of re-fetched.
const DefaultCacheTTL = 30 * time.Second

type cacheEntry struct {
	response *SearchResponse
	expires  time.Time
}

// ResponseCache holds recent search responses keyed by their full parameter
// tuple. Keying by tuple is also the concurrency contract: a slow response
// for a superseded query lands under its own key and can never overwrite
// the entry for a newer one; superseded results are silently discarded by
// key, not aborted in flight.
type ResponseCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
	now     func() time.Time
}

// NewResponseCache creates a cache with the given TTL. A non-positive TTL
// falls back to the default staleness window.
func NewResponseCache(ttl time.Duration) *ResponseCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &ResponseCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// CacheKey builds the full parameter tuple key for a search.
func CacheKey(query string, limit int) string {
	return fmt.Sprintf("%d|%s", limit, query)
}

// Get returns the cached response for key, if present and fresh.
func (c *ResponseCache) Get(key string) (*SearchResponse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expires) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.response, true
}

// Put stores a response under its key for the staleness window.
func (c *ResponseCache) Put(key string, response *SearchResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{response: response, expires: c.now().Add(c.ttl)}
}
