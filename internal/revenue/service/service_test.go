package service

import (
	"testing"
	"time"

	"opticlinic_backend/internal/revenue/transport"
	"opticlinic_backend/platform/apperr"

	"github.com/google/uuid"
)

func TestBuildFilterScopesToCallerBranch(t *testing.T) {
	branch := uuid.New()

	filter, err := buildFilter(&branch, transport.ListRequest{})
	if err != nil {
		t.Fatalf("buildFilter failed: %v", err)
	}
	if filter.BranchID == nil || *filter.BranchID != branch {
		t.Error("expected filter scoped to the caller's branch")
	}
}

func TestBuildFilterRejectsForeignBranch(t *testing.T) {
	caller := uuid.New()
	other := uuid.New()

	_, err := buildFilter(&caller, transport.ListRequest{Branch: other.String()})
	if !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("expected forbidden error, got %v", err)
	}
}

func TestBuildFilterHeadOfficePicksAnyBranch(t *testing.T) {
	requested := uuid.New()

	filter, err := buildFilter(nil, transport.ListRequest{Branch: requested.String()})
	if err != nil {
		t.Fatalf("buildFilter failed: %v", err)
	}
	if filter.BranchID == nil || *filter.BranchID != requested {
		t.Error("head-office caller should be able to filter by any branch")
	}

	filter, err = buildFilter(nil, transport.ListRequest{})
	if err != nil {
		t.Fatalf("buildFilter failed: %v", err)
	}
	if filter.BranchID != nil {
		t.Error("head-office caller without a branch filter should see all branches")
	}
}

func TestBuildFilterRejectsEmptyDateRange(t *testing.T) {
	from := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	to := from.Add(-24 * time.Hour)

	_, err := buildFilter(nil, transport.ListRequest{From: &from, To: &to})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
