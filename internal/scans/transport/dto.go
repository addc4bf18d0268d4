// Package transport defines the wire DTOs for diagnostic scans.
package transport

import (
	"time"

	"opticlinic_backend/platform/httpkit"
)

// Scan processing statuses.
const (
	StatusUploaded   = "uploaded"
	StatusProcessing = "processing"
	StatusReady      = "ready"
	StatusFailed     = "failed"
)

// Scan types produced by the clinic's capture devices.
const (
	TypeOCT         = "oct"
	TypeFundus      = "fundus"
	TypeTopography  = "topography"
	TypeVisualField = "visual_field"
	TypePachymetry  = "pachymetry"
)

// ListRequest is the query-string contract for GET /scans.
type ListRequest struct {
	Page      int    `form:"page" validate:"omitempty,min=1"`
	PageSize  int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
	PatientID int64  `form:"patientId" validate:"omitempty,min=1"`
	ScanType  string `form:"scanType" validate:"omitempty,oneof=oct fundus topography visual_field pachymetry"`
	Status    string `form:"status" validate:"omitempty,oneof=uploaded processing ready failed"`
}

// Scan is one diagnostic scan record.
type Scan struct {
	ID         int64      `json:"id"`
	BranchID   string     `json:"branch_id"`
	PatientID  int64      `json:"patient_id"`
	ScanType   string     `json:"scan_type"`
	FileKey    string     `json:"file_key"`
	FileName   string     `json:"file_name"`
	SizeBytes  int64      `json:"size_bytes"`
	Status     string     `json:"status"`
	CapturedAt *time.Time `json:"captured_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ListResponse is the paginated envelope for scans.
type ListResponse = httpkit.PageEnvelope[Scan]

// DownloadResponse carries a presigned URL for fetching scan imagery.
type DownloadResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
