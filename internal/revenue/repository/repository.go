// Package repository persists revenue entries.
package repository

import (
	"context"
	"time"

	"opticlinic_backend/internal/revenue/transport"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Filter narrows List, Count, and Summary.
type Filter struct {
	BranchID *uuid.UUID
	Status   string
	From     *time.Time
	To       *time.Time
}

func branchParam(branchID *uuid.UUID) interface{} {
	if branchID == nil {
		return nil
	}
	return *branchID
}

func timeParam(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}

// List returns a page of entries, newest entry date first.
func (r *Repository) List(ctx context.Context, f Filter, offset, limit int) ([]transport.Entry, error) {
	const sql = `
		SELECT id, branch_id, patient_id, description, amount_cents, currency, status, entry_date, created_at
		FROM revenue_entries
		WHERE ($1::uuid IS NULL OR branch_id = $1)
			AND ($2 = '' OR status = $2)
			AND ($3::timestamptz IS NULL OR entry_date >= $3)
			AND ($4::timestamptz IS NULL OR entry_date < $4)
		ORDER BY entry_date DESC, id DESC
		OFFSET $5 LIMIT $6`

	rows, err := r.pool.Query(ctx, sql,
		branchParam(f.BranchID), f.Status, timeParam(f.From), timeParam(f.To), offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]transport.Entry, 0)
	for rows.Next() {
		var entry transport.Entry
		var branchID uuid.UUID
		if err := rows.Scan(&entry.ID, &branchID, &entry.PatientID, &entry.Description,
			&entry.AmountCents, &entry.Currency, &entry.Status, &entry.EntryDate, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entry.BranchID = branchID.String()
		items = append(items, entry)
	}
	return items, rows.Err()
}

// Count returns the number of entries matching the filter.
func (r *Repository) Count(ctx context.Context, f Filter) (int, error) {
	const sql = `
		SELECT count(*)
		FROM revenue_entries
		WHERE ($1::uuid IS NULL OR branch_id = $1)
			AND ($2 = '' OR status = $2)
			AND ($3::timestamptz IS NULL OR entry_date >= $3)
			AND ($4::timestamptz IS NULL OR entry_date < $4)`

	var total int
	err := r.pool.QueryRow(ctx, sql,
		branchParam(f.BranchID), f.Status, timeParam(f.From), timeParam(f.To)).Scan(&total)
	return total, err
}

// DailyTotal is a per-day aggregate used by the summary endpoint.
type DailyTotal struct {
	Day         time.Time
	Count       int64
	AmountCents int64
}

// Summary aggregates matching entries per day.
func (r *Repository) Summary(ctx context.Context, f Filter) ([]DailyTotal, error) {
	const sql = `
		SELECT date_trunc('day', entry_date) AS day, count(*), coalesce(sum(amount_cents), 0)
		FROM revenue_entries
		WHERE ($1::uuid IS NULL OR branch_id = $1)
			AND ($2 = '' OR status = $2)
			AND ($3::timestamptz IS NULL OR entry_date >= $3)
			AND ($4::timestamptz IS NULL OR entry_date < $4)
		GROUP BY day
		ORDER BY day`

	rows, err := r.pool.Query(ctx, sql,
		branchParam(f.BranchID), f.Status, timeParam(f.From), timeParam(f.To))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make([]DailyTotal, 0)
	for rows.Next() {
		var dt DailyTotal
		if err := rows.Scan(&dt.Day, &dt.Count, &dt.AmountCents); err != nil {
			return nil, err
		}
		totals = append(totals, dt)
	}
	return totals, rows.Err()
}
