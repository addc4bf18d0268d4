// Package repository runs the per-category full-text queries behind global
// search. Each category is fetched independently so the service can fan the
// queries out concurrently and assemble groups in a fixed category order.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Query carries the canonicalized search input. Phone is the E.164 form of
// a phone-shaped query, empty otherwise; categories with phone columns match
// it in addition to the text.
type Query struct {
	Text  string
	Phone string
}

// Row is one matched entity before the service attaches display metadata.
type Row struct {
	ID        int64
	Title     string
	Subtitle  string
	Rank      float32
	CreatedAt time.Time
}

// branchParam yields a nil-able query parameter: head-office users pass nil
// and see every branch.
func branchParam(branchID *uuid.UUID) interface{} {
	if branchID == nil {
		return nil
	}
	return *branchID
}

func (r *Repository) collect(ctx context.Context, sql string, args ...interface{}) ([]Row, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("search query failed: %w", err)
	}
	defer rows.Close()

	items := make([]Row, 0)
	for rows.Next() {
		var item Row
		if err := rows.Scan(&item.ID, &item.Title, &item.Subtitle, &item.Rank, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return items, nil
}

// SearchPatients matches patient name, email, and phone.
func (r *Repository) SearchPatients(ctx context.Context, branchID *uuid.UUID, q Query, limit int) ([]Row, error) {
	const sql = `
		SELECT
			p.id,
			COALESCE(NULLIF(trim(concat_ws(' ', p.first_name, p.last_name)), ''), 'Unknown') AS title,
			concat_ws(' • ', NULLIF(p.email, ''), NULLIF(p.phone, '')) AS subtitle,
			ts_rank(
				setweight(to_tsvector('simple', coalesce(p.first_name, '')), 'A') ||
				setweight(to_tsvector('simple', coalesce(p.last_name, '')), 'A') ||
				setweight(to_tsvector('simple', coalesce(p.email, '')), 'B'),
				websearch_to_tsquery('simple', $2)
			) AS rank,
			p.created_at
		FROM clinic_patients p
		WHERE p.deleted_at IS NULL
			AND ($1::uuid IS NULL OR p.branch_id = $1)
			AND (
				(
					setweight(to_tsvector('simple', coalesce(p.first_name, '')), 'A') ||
					setweight(to_tsvector('simple', coalesce(p.last_name, '')), 'A') ||
					setweight(to_tsvector('simple', coalesce(p.email, '')), 'B')
				) @@ websearch_to_tsquery('simple', $2)
				OR ($3 <> '' AND p.phone = $3)
			)
		ORDER BY rank DESC, p.created_at DESC
		LIMIT $4`
	return r.collect(ctx, sql, branchParam(branchID), q.Text, q.Phone, limit)
}

// SearchStaff matches staff name, role title, and email.
func (r *Repository) SearchStaff(ctx context.Context, branchID *uuid.UUID, q Query, limit int) ([]Row, error) {
	const sql = `
		SELECT
			s.id,
			s.full_name AS title,
			concat_ws(' • ', NULLIF(s.role_title, ''), NULLIF(s.email, '')) AS subtitle,
			ts_rank(
				setweight(to_tsvector('simple', coalesce(s.full_name, '')), 'A') ||
				setweight(to_tsvector('simple', coalesce(s.role_title, '')), 'B') ||
				setweight(to_tsvector('simple', coalesce(s.email, '')), 'B'),
				websearch_to_tsquery('simple', $2)
			) AS rank,
			s.created_at
		FROM clinic_staff s
		WHERE s.active
			AND ($1::uuid IS NULL OR s.branch_id = $1)
			AND (
				(
					setweight(to_tsvector('simple', coalesce(s.full_name, '')), 'A') ||
					setweight(to_tsvector('simple', coalesce(s.role_title, '')), 'B') ||
					setweight(to_tsvector('simple', coalesce(s.email, '')), 'B')
				) @@ websearch_to_tsquery('simple', $2)
				OR ($3 <> '' AND s.phone = $3)
			)
		ORDER BY rank DESC, s.created_at DESC
		LIMIT $4`
	return r.collect(ctx, sql, branchParam(branchID), q.Text, q.Phone, limit)
}

// SearchVisits matches visit reason and the visiting patient's name.
func (r *Repository) SearchVisits(ctx context.Context, branchID *uuid.UUID, q Query, limit int) ([]Row, error) {
	const sql = `
		SELECT
			v.id,
			concat_ws(' — ', trim(concat_ws(' ', p.first_name, p.last_name)), to_char(v.visit_date, 'YYYY-MM-DD')) AS title,
			concat_ws(' • ', NULLIF(v.reason, ''), v.status) AS subtitle,
			ts_rank(
				setweight(to_tsvector('simple', coalesce(v.reason, '')), 'B') ||
				setweight(to_tsvector('simple', coalesce(p.first_name, '')), 'A') ||
				setweight(to_tsvector('simple', coalesce(p.last_name, '')), 'A'),
				websearch_to_tsquery('simple', $2)
			) AS rank,
			v.created_at
		FROM clinic_visits v
		JOIN clinic_patients p ON p.id = v.patient_id
		WHERE ($1::uuid IS NULL OR v.branch_id = $1)
			AND (
				setweight(to_tsvector('simple', coalesce(v.reason, '')), 'B') ||
				setweight(to_tsvector('simple', coalesce(p.first_name, '')), 'A') ||
				setweight(to_tsvector('simple', coalesce(p.last_name, '')), 'A')
			) @@ websearch_to_tsquery('simple', $2)
		ORDER BY rank DESC, v.created_at DESC
		LIMIT $3`
	return r.collect(ctx, sql, branchParam(branchID), q.Text, limit)
}

// SearchScans matches scan type and the scanned patient's name.
func (r *Repository) SearchScans(ctx context.Context, branchID *uuid.UUID, q Query, limit int) ([]Row, error) {
	const sql = `
		SELECT
			sc.id,
			concat_ws(' — ', sc.scan_type, trim(concat_ws(' ', p.first_name, p.last_name))) AS title,
			concat_ws(' • ', sc.status, to_char(sc.created_at, 'YYYY-MM-DD')) AS subtitle,
			ts_rank(
				setweight(to_tsvector('simple', coalesce(sc.scan_type, '')), 'A') ||
				setweight(to_tsvector('simple', coalesce(p.first_name, '')), 'B') ||
				setweight(to_tsvector('simple', coalesce(p.last_name, '')), 'B'),
				websearch_to_tsquery('simple', $2)
			) AS rank,
			sc.created_at
		FROM clinic_scans sc
		JOIN clinic_patients p ON p.id = sc.patient_id
		WHERE ($1::uuid IS NULL OR sc.branch_id = $1)
			AND (
				setweight(to_tsvector('simple', coalesce(sc.scan_type, '')), 'A') ||
				setweight(to_tsvector('simple', coalesce(p.first_name, '')), 'B') ||
				setweight(to_tsvector('simple', coalesce(p.last_name, '')), 'B')
			) @@ websearch_to_tsquery('simple', $2)
		ORDER BY rank DESC, sc.created_at DESC
		LIMIT $3`
	return r.collect(ctx, sql, branchParam(branchID), q.Text, limit)
}

// SearchProducts matches frames/lenses stock by name, brand, and SKU.
// Products are shared across branches, so no branch filter applies.
func (r *Repository) SearchProducts(ctx context.Context, q Query, limit int) ([]Row, error) {
	const sql = `
		SELECT
			pr.id,
			pr.name AS title,
			concat_ws(' • ', NULLIF(pr.brand, ''), pr.sku) AS subtitle,
			ts_rank(
				setweight(to_tsvector('simple', coalesce(pr.name, '')), 'A') ||
				setweight(to_tsvector('simple', coalesce(pr.brand, '')), 'B') ||
				setweight(to_tsvector('simple', coalesce(pr.sku, '')), 'A'),
				websearch_to_tsquery('simple', $1)
			) AS rank,
			pr.created_at
		FROM clinic_products pr
		WHERE (
				setweight(to_tsvector('simple', coalesce(pr.name, '')), 'A') ||
				setweight(to_tsvector('simple', coalesce(pr.brand, '')), 'B') ||
				setweight(to_tsvector('simple', coalesce(pr.sku, '')), 'A')
			) @@ websearch_to_tsquery('simple', $1)
		ORDER BY rank DESC, pr.created_at DESC
		LIMIT $2`
	return r.collect(ctx, sql, q.Text, limit)
}
