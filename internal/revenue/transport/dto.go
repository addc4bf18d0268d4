// Package transport defines the wire DTOs for revenue reporting.
package transport

import (
	"time"

	"opticlinic_backend/platform/httpkit"
)

// Entry statuses.
const (
	StatusPending = "pending"
	StatusPaid    = "paid"
	StatusVoided  = "voided"
)

// ListRequest is the query-string contract for GET /revenue.
type ListRequest struct {
	Page     int        `form:"page" validate:"omitempty,min=1"`
	PageSize int        `form:"pageSize" validate:"omitempty,min=1,max=100"`
	Branch   string     `form:"branch" validate:"omitempty,uuid"`
	Status   string     `form:"status" validate:"omitempty,oneof=pending paid voided"`
	From     *time.Time `form:"from" time_format:"2006-01-02"`
	To       *time.Time `form:"to" time_format:"2006-01-02"`
}

// Entry is one revenue line: an invoiced exam, scan, or product sale.
type Entry struct {
	ID          int64     `json:"id"`
	BranchID    string    `json:"branch_id"`
	PatientID   *int64    `json:"patient_id,omitempty"`
	Description string    `json:"description"`
	AmountCents int64     `json:"amount_cents"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	EntryDate   time.Time `json:"entry_date"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListResponse is the paginated envelope for revenue entries.
type ListResponse = httpkit.PageEnvelope[Entry]

// SummaryResponse aggregates revenue over the filtered window.
type SummaryResponse struct {
	TotalCents  int64            `json:"total_cents"`
	Currency    string           `json:"currency"`
	CountByDay  map[string]int64 `json:"count_by_day"`
	AmountByDay map[string]int64 `json:"amount_by_day"`
}
