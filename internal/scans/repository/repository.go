// Package repository persists diagnostic scan records.
package repository

import (
	"context"
	"errors"
	"time"

	"opticlinic_backend/internal/scans/transport"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a scan does not exist.
var ErrNotFound = errors.New("scan not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Filter narrows List and Count.
type Filter struct {
	BranchID  *uuid.UUID
	PatientID int64
	ScanType  string
	Status    string
}

func branchParam(branchID *uuid.UUID) interface{} {
	if branchID == nil {
		return nil
	}
	return *branchID
}

// Insert creates a scan record in status "uploaded" and returns its ID.
func (r *Repository) Insert(ctx context.Context, branchID uuid.UUID, patientID int64, scanType, fileKey, fileName string, sizeBytes int64) (int64, error) {
	const sql = `
		INSERT INTO clinic_scans (branch_id, patient_id, scan_type, file_key, file_name, size_bytes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	var id int64
	err := r.pool.QueryRow(ctx, sql, branchID, patientID, scanType, fileKey, fileName, sizeBytes,
		transport.StatusUploaded).Scan(&id)
	return id, err
}

// GetByID fetches a single scan.
func (r *Repository) GetByID(ctx context.Context, id int64) (*transport.Scan, error) {
	const sql = `
		SELECT id, branch_id, patient_id, scan_type, file_key, file_name, size_bytes, status, captured_at, created_at
		FROM clinic_scans
		WHERE id = $1`

	var scan transport.Scan
	var branchID uuid.UUID
	err := r.pool.QueryRow(ctx, sql, id).Scan(&scan.ID, &branchID, &scan.PatientID, &scan.ScanType,
		&scan.FileKey, &scan.FileName, &scan.SizeBytes, &scan.Status, &scan.CapturedAt, &scan.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	scan.BranchID = branchID.String()
	return &scan, nil
}

// List returns a page of scans, newest first.
func (r *Repository) List(ctx context.Context, f Filter, offset, limit int) ([]transport.Scan, error) {
	const sql = `
		SELECT id, branch_id, patient_id, scan_type, file_key, file_name, size_bytes, status, captured_at, created_at
		FROM clinic_scans
		WHERE ($1::uuid IS NULL OR branch_id = $1)
			AND ($2 = 0 OR patient_id = $2)
			AND ($3 = '' OR scan_type = $3)
			AND ($4 = '' OR status = $4)
		ORDER BY created_at DESC, id DESC
		OFFSET $5 LIMIT $6`

	rows, err := r.pool.Query(ctx, sql, branchParam(f.BranchID), f.PatientID, f.ScanType, f.Status, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]transport.Scan, 0)
	for rows.Next() {
		var scan transport.Scan
		var branchID uuid.UUID
		if err := rows.Scan(&scan.ID, &branchID, &scan.PatientID, &scan.ScanType, &scan.FileKey,
			&scan.FileName, &scan.SizeBytes, &scan.Status, &scan.CapturedAt, &scan.CreatedAt); err != nil {
			return nil, err
		}
		scan.BranchID = branchID.String()
		items = append(items, scan)
	}
	return items, rows.Err()
}

// Count returns the number of scans matching the filter.
func (r *Repository) Count(ctx context.Context, f Filter) (int, error) {
	const sql = `
		SELECT count(*)
		FROM clinic_scans
		WHERE ($1::uuid IS NULL OR branch_id = $1)
			AND ($2 = 0 OR patient_id = $2)
			AND ($3 = '' OR scan_type = $3)
			AND ($4 = '' OR status = $4)`

	var total int
	err := r.pool.QueryRow(ctx, sql, branchParam(f.BranchID), f.PatientID, f.ScanType, f.Status).Scan(&total)
	return total, err
}

// SetStatus updates a scan's processing status.
func (r *Repository) SetStatus(ctx context.Context, id int64, status string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE clinic_scans SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetProcessed marks a scan ready and records the capture time extracted
// during post-processing, when one was found.
func (r *Repository) SetProcessed(ctx context.Context, id int64, capturedAt *time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE clinic_scans SET status = $2, captured_at = $3 WHERE id = $1`,
		id, transport.StatusReady, capturedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
