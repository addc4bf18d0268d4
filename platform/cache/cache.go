// Package cache provides a Redis-backed JSON value cache.
// This is part of the platform layer and contains no business logic.
package cache

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"time"

	"opticlinic_backend/platform/config"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned when a key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// Cache stores JSON-encoded values with a per-entry TTL. Entries are keyed
// by their full parameter tuple, so a stale response for a superseded key
// can never be served for a newer one.
type Cache struct {
	client *redis.Client
}

// NewClient builds a Redis client from the configured URL.
func NewClient(cfg config.RedisConfig) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		return nil, err
	}

	if opt.TLSConfig != nil && cfg.GetRedisTLSInsecure() {
		clone := opt.TLSConfig.Clone()
		clone.InsecureSkipVerify = true
		opt.TLSConfig = clone
	} else if opt.TLSConfig == nil && cfg.GetRedisTLSInsecure() {
		opt.TLSConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return redis.NewClient(opt), nil
}

// New creates a Cache on top of an existing Redis client.
func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Get unmarshals the cached value for key into dest.
// Returns ErrMiss when the key is absent; a value that fails to decode is
// treated as a miss and evicted rather than surfaced as an error.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return err
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		_ = c.client.Del(ctx, key).Err()
		return ErrMiss
	}
	return nil
}

// Set stores value under key for the given TTL.
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, ttl).Err()
}

// Delete removes a key. Missing keys are not an error.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}
