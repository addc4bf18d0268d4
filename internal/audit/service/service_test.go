package service

import (
	"testing"
	"time"

	"opticlinic_backend/internal/audit/transport"
	"opticlinic_backend/platform/apperr"
)

var testNow = time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

func TestBuildFilterDefaultsToLastSevenDays(t *testing.T) {
	filter, err := buildFilter(transport.ListRequest{}, testNow)
	if err != nil {
		t.Fatalf("buildFilter failed: %v", err)
	}
	if !filter.To.Equal(testNow) {
		t.Errorf("default window should end now, got %v", filter.To)
	}
	if want := testNow.Add(-7 * 24 * time.Hour); !filter.From.Equal(want) {
		t.Errorf("default window should start 7 days back, got %v", filter.From)
	}
}

func TestBuildFilterInclusiveToDate(t *testing.T) {
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)

	filter, err := buildFilter(transport.ListRequest{From: &from, To: &to}, testNow)
	if err != nil {
		t.Fatalf("buildFilter failed: %v", err)
	}
	if want := to.Add(24 * time.Hour); !filter.To.Equal(want) {
		t.Errorf("To date must be inclusive, got %v", filter.To)
	}
}

func TestBuildFilterOpenEndedFrom(t *testing.T) {
	from := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	filter, err := buildFilter(transport.ListRequest{From: &from}, testNow)
	if err != nil {
		t.Fatalf("buildFilter failed: %v", err)
	}
	if !filter.To.Equal(testNow) {
		t.Errorf("open-ended range should end now, got %v", filter.To)
	}
}

func TestBuildFilterRejectsEmptyRange(t *testing.T) {
	from := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	_, err := buildFilter(transport.ListRequest{From: &from, To: &to}, testNow)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for inverted range, got %v", err)
	}
}

func TestBuildFilterCarriesActionAndActor(t *testing.T) {
	filter, err := buildFilter(transport.ListRequest{Action: "referral.received", Actor: "abc"}, testNow)
	if err != nil {
		t.Fatalf("buildFilter failed: %v", err)
	}
	if filter.Action != "referral.received" || filter.Actor != "abc" {
		t.Errorf("filter fields not carried: %+v", filter)
	}
}
