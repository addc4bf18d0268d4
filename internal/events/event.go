// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"time"

	"opticlinic_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// Event names, as returned by each event's EventName method.
const (
	EventReferralReceived = "referrals.received"
	EventScanProcessed    = "scans.processed"
)

// =============================================================================
// Referral Domain Events
// =============================================================================

// ReferralReceived is published when a new patient referral is recorded.
type ReferralReceived struct {
	BaseEvent
	ReferralID    int64     `json:"referralId"`
	BranchID      uuid.UUID `json:"branchId"`
	PatientName   string    `json:"patientName"`
	ReferrerName  string    `json:"referrerName"`
	ReferrerEmail string    `json:"referrerEmail"`
}

func (e ReferralReceived) EventName() string { return EventReferralReceived }

// =============================================================================
// Scan Domain Events
// =============================================================================

// ScanProcessed is published when a diagnostic scan finished post-processing.
type ScanProcessed struct {
	BaseEvent
	ScanID     int64      `json:"scanId"`
	PatientID  int64      `json:"patientId"`
	CapturedAt *time.Time `json:"capturedAt,omitempty"`
}

func (e ScanProcessed) EventName() string { return EventScanProcessed }
