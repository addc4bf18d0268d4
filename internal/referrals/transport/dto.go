// Package transport defines the wire DTOs for patient referrals.
package transport

import (
	"time"

	"opticlinic_backend/platform/httpkit"
)

// Referral statuses.
const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusBooked    = "booked"
	StatusClosed    = "closed"
)

// CreateRequest is the body for POST /referrals.
type CreateRequest struct {
	PatientName   string `json:"patient_name" validate:"required,min=2,max=200"`
	PatientPhone  string `json:"patient_phone" validate:"omitempty,max=30"`
	PatientEmail  string `json:"patient_email" validate:"omitempty,email"`
	ReferrerName  string `json:"referrer_name" validate:"required,min=2,max=200"`
	ReferrerEmail string `json:"referrer_email" validate:"omitempty,email"`
	Reason        string `json:"reason" validate:"omitempty,max=1000"`
}

// ListRequest is the query-string contract for GET /referrals.
type ListRequest struct {
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
	Status   string `form:"status" validate:"omitempty,oneof=new contacted booked closed"`
}

// UpdateStatusRequest is the body for PATCH /referrals/:id/status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new contacted booked closed"`
}

// Referral is one recorded patient referral.
type Referral struct {
	ID            int64     `json:"id"`
	BranchID      string    `json:"branch_id"`
	PatientName   string    `json:"patient_name"`
	PatientPhone  string    `json:"patient_phone,omitempty"`
	PatientEmail  string    `json:"patient_email,omitempty"`
	ReferrerName  string    `json:"referrer_name"`
	ReferrerEmail string    `json:"referrer_email,omitempty"`
	Reason        string    `json:"reason,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// ListResponse is the paginated envelope for referrals.
type ListResponse = httpkit.PageEnvelope[Referral]
