package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestSearchEmptyQueryReturnsEmptyResponse(t *testing.T) {
	svc := &Service{}

	for _, q := range []string{"", "   ", "\t\n"} {
		resp, err := svc.Search(context.Background(), uuid.New(), nil, q, 10)
		if err != nil {
			t.Fatalf("Search(%q) failed: %v", q, err)
		}
		if resp.TotalCount != 0 {
			t.Errorf("Search(%q): TotalCount = %d, want 0", q, resp.TotalCount)
		}
		if resp.Results == nil || resp.Results.Len() != 0 {
			t.Errorf("Search(%q): expected empty result set", q)
		}
	}
}

func TestCacheKeyIsCaseInsensitiveOnQuery(t *testing.T) {
	svc := &Service{}
	branch := uuid.New()

	a := svc.cacheKey(&branch, 10, "Fredrick")
	b := svc.cacheKey(&branch, 10, "fredrick")
	if a != b {
		t.Errorf("cache keys differ by query case: %q vs %q", a, b)
	}

	c := svc.cacheKey(&branch, 20, "fredrick")
	if a == c {
		t.Error("cache key must vary with limit")
	}

	d := svc.cacheKey(nil, 10, "fredrick")
	if a == d {
		t.Error("cache key must vary with branch scope")
	}
	if !strings.Contains(d, ":all:") {
		t.Errorf("head-office key should use the all-branches scope, got %q", d)
	}
}

func TestResultURLPerCategory(t *testing.T) {
	cases := map[string]string{
		CategoryPatients: "/patients/42",
		CategoryStaff:    "/staff/42",
		CategoryVisits:   "/visits/42",
		CategoryScans:    "/scans/42",
		CategoryProducts: "/inventory/42",
	}
	for category, want := range cases {
		if got := resultURL(category, 42); got != want {
			t.Errorf("resultURL(%q) = %q, want %q", category, got, want)
		}
	}
}

func TestCategoryOrderIsStable(t *testing.T) {
	want := []string{"patients", "staff", "visits", "scans", "products"}
	got := CategoryOrder()
	if len(got) != len(want) {
		t.Fatalf("expected %d categories, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("category[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	// Callers must not be able to reorder the shared slice.
	got[0] = "mutated"
	if CategoryOrder()[0] != "patients" {
		t.Error("CategoryOrder must return a copy")
	}
}
