// Package repository persists audit log entries.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"opticlinic_backend/internal/audit/transport"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Filter narrows List and Count to a window, action, and actor.
type Filter struct {
	From   time.Time
	To     time.Time
	Action string
	Actor  string
}

// Insert records a new audit entry.
func (r *Repository) Insert(ctx context.Context, actorID, action, entity, entityID string, metadata map[string]interface{}) error {
	var raw []byte
	if metadata != nil {
		encoded, err := json.Marshal(metadata)
		if err != nil {
			return fmt.Errorf("encode audit metadata: %w", err)
		}
		raw = encoded
	}

	const sql = `
		INSERT INTO audit_logs (actor_id, action, entity, entity_id, metadata)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(ctx, sql, actorID, action, entity, entityID, raw)
	return err
}

// List returns entries matching the filter, newest first.
func (r *Repository) List(ctx context.Context, f Filter, skip, limit int) ([]transport.Entry, error) {
	const sql = `
		SELECT id, actor_id, action, entity, entity_id, metadata, created_at
		FROM audit_logs
		WHERE created_at >= $1 AND created_at < $2
			AND ($3 = '' OR action = $3)
			AND ($4 = '' OR actor_id = $4)
		ORDER BY created_at DESC
		OFFSET $5 LIMIT $6`

	rows, err := r.pool.Query(ctx, sql, f.From, f.To, f.Action, f.Actor, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]transport.Entry, 0)
	for rows.Next() {
		var entry transport.Entry
		var raw []byte
		if err := rows.Scan(&entry.ID, &entry.ActorID, &entry.Action, &entry.Entity, &entry.EntityID, &raw, &entry.CreatedAt); err != nil {
			return nil, err
		}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &entry.Metadata); err != nil {
				entry.Metadata = nil
			}
		}
		items = append(items, entry)
	}
	return items, rows.Err()
}

// Count returns the number of entries matching the filter.
func (r *Repository) Count(ctx context.Context, f Filter) (int, error) {
	const sql = `
		SELECT count(*)
		FROM audit_logs
		WHERE created_at >= $1 AND created_at < $2
			AND ($3 = '' OR action = $3)
			AND ($4 = '' OR actor_id = $4)`

	var total int
	err := r.pool.QueryRow(ctx, sql, f.From, f.To, f.Action, f.Actor).Scan(&total)
	return total, err
}

// DeleteOlderThan removes entries created before the cutoff and returns the
// number of rows removed.
func (r *Repository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM audit_logs WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
