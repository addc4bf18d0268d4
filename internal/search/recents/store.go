// Package recents persists each user's recent search queries in Redis.
package recents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Store keeps a small per-user ring of recent queries. Saving an existing
// query moves it to the front instead of duplicating it; the list is capped
// at max entries with the oldest dropped first.
type Store struct {
	client *redis.Client
	max    int
}

func New(client *redis.Client, max int) *Store {
	if max <= 0 {
		max = 8
	}
	return &Store{client: client, max: max}
}

func key(userID uuid.UUID) string {
	return fmt.Sprintf("search:recent:%s", userID)
}

// List returns the user's recent queries, most recent first. A value that
// fails to decode is discarded and treated as empty rather than surfaced as
// an error.
func (s *Store) List(ctx context.Context, userID uuid.UUID) ([]string, error) {
	raw, err := s.client.Get(ctx, key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		_ = s.client.Del(ctx, key(userID)).Err()
		return []string{}, nil
	}
	return items, nil
}

// Save records a query at the front of the user's list. Blank queries are
// ignored; a repeated query is moved to the front.
func (s *Store) Save(ctx context.Context, userID uuid.UUID, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	items, err := s.List(ctx, userID)
	if err != nil {
		return err
	}

	next := make([]string, 0, len(items)+1)
	next = append(next, query)
	for _, item := range items {
		if strings.EqualFold(item, query) {
			continue
		}
		next = append(next, item)
	}
	if len(next) > s.max {
		next = next[:s.max]
	}

	raw, err := json.Marshal(next)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key(userID), raw, 0).Err()
}

// Clear removes the user's recent queries.
func (s *Store) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.client.Del(ctx, key(userID)).Err()
}
