package searchkit

import (
	"testing"
	"time"
)

func TestCacheHitWithinWindow(t *testing.T) {
	cache := NewResponseCache(30 * time.Second)
	response := fredrickResponse()

	key := CacheKey("fredrick", 10)
	cache.Put(key, response)

	got, ok := cache.Get(key)
	if !ok || got != response {
		t.Fatal("expected a fresh cache hit")
	}
}

func TestCacheExpiresAfterWindow(t *testing.T) {
	cache := NewResponseCache(30 * time.Second)
	current := time.Now()
	cache.now = func() time.Time { return current }

	key := CacheKey("fredrick", 10)
	cache.Put(key, fredrickResponse())

	current = current.Add(31 * time.Second)
	if _, ok := cache.Get(key); ok {
		t.Error("entry past the staleness window must miss")
	}
}

func TestCacheKeysAreTupleScoped(t *testing.T) {
	if CacheKey("fredrick", 10) == CacheKey("fredrick", 20) {
		t.Error("different limits must produce different keys")
	}
	if CacheKey("fredrick", 10) == CacheKey("fred", 10) {
		t.Error("different queries must produce different keys")
	}
}
