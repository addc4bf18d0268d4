// Package repository persists patient referrals.
package repository

import (
	"context"
	"errors"

	"opticlinic_backend/internal/referrals/transport"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a referral does not exist.
var ErrNotFound = errors.New("referral not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert creates a referral in status "new" and returns its ID.
func (r *Repository) Insert(ctx context.Context, branchID uuid.UUID, req transport.CreateRequest) (int64, error) {
	const sql = `
		INSERT INTO referrals (branch_id, patient_name, patient_phone, patient_email,
			referrer_name, referrer_email, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	var id int64
	err := r.pool.QueryRow(ctx, sql, branchID, req.PatientName, req.PatientPhone, req.PatientEmail,
		req.ReferrerName, req.ReferrerEmail, req.Reason, transport.StatusNew).Scan(&id)
	return id, err
}

// GetByID fetches a single referral.
func (r *Repository) GetByID(ctx context.Context, id int64) (*transport.Referral, error) {
	const sql = `
		SELECT id, branch_id, patient_name, patient_phone, patient_email,
			referrer_name, referrer_email, reason, status, created_at
		FROM referrals
		WHERE id = $1`

	var ref transport.Referral
	var branchID uuid.UUID
	err := r.pool.QueryRow(ctx, sql, id).Scan(&ref.ID, &branchID, &ref.PatientName,
		&ref.PatientPhone, &ref.PatientEmail, &ref.ReferrerName, &ref.ReferrerEmail,
		&ref.Reason, &ref.Status, &ref.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	ref.BranchID = branchID.String()
	return &ref, nil
}

func branchParam(branchID *uuid.UUID) interface{} {
	if branchID == nil {
		return nil
	}
	return *branchID
}

// List returns a page of referrals, newest first.
func (r *Repository) List(ctx context.Context, branchID *uuid.UUID, status string, offset, limit int) ([]transport.Referral, error) {
	const sql = `
		SELECT id, branch_id, patient_name, patient_phone, patient_email,
			referrer_name, referrer_email, reason, status, created_at
		FROM referrals
		WHERE ($1::uuid IS NULL OR branch_id = $1)
			AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC, id DESC
		OFFSET $3 LIMIT $4`

	rows, err := r.pool.Query(ctx, sql, branchParam(branchID), status, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]transport.Referral, 0)
	for rows.Next() {
		var ref transport.Referral
		var bid uuid.UUID
		if err := rows.Scan(&ref.ID, &bid, &ref.PatientName, &ref.PatientPhone, &ref.PatientEmail,
			&ref.ReferrerName, &ref.ReferrerEmail, &ref.Reason, &ref.Status, &ref.CreatedAt); err != nil {
			return nil, err
		}
		ref.BranchID = bid.String()
		items = append(items, ref)
	}
	return items, rows.Err()
}

// Count returns the number of referrals matching the filter.
func (r *Repository) Count(ctx context.Context, branchID *uuid.UUID, status string) (int, error) {
	const sql = `
		SELECT count(*)
		FROM referrals
		WHERE ($1::uuid IS NULL OR branch_id = $1)
			AND ($2 = '' OR status = $2)`

	var total int
	err := r.pool.QueryRow(ctx, sql, branchParam(branchID), status).Scan(&total)
	return total, err
}

// UpdateStatus moves a referral to a new status.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE referrals SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
