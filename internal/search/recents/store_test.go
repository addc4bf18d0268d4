package recents

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client, 8), srv
}

func TestListEmptyForNewUser(t *testing.T) {
	store, _ := newTestStore(t)
	items, err := store.List(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty list, got %v", items)
	}
}

func TestSaveOrdersMostRecentFirst(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	userID := uuid.New()

	for _, q := range []string{"fredrick", "varilux", "retinal scan"} {
		if err := store.Save(ctx, userID, q); err != nil {
			t.Fatalf("Save(%q) failed: %v", q, err)
		}
	}

	items, err := store.List(ctx, userID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	want := []string{"retinal scan", "varilux", "fredrick"}
	if len(items) != len(want) {
		t.Fatalf("expected %d items, got %d: %v", len(want), len(items), items)
	}
	for i := range want {
		if items[i] != want[i] {
			t.Errorf("items[%d] = %q, want %q", i, items[i], want[i])
		}
	}
}

func TestSaveDeduplicatesToFront(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	userID := uuid.New()

	for _, q := range []string{"fredrick", "varilux", "Fredrick"} {
		if err := store.Save(ctx, userID, q); err != nil {
			t.Fatalf("Save(%q) failed: %v", q, err)
		}
	}

	items, err := store.List(ctx, userID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items after dedupe, got %d: %v", len(items), items)
	}
	if items[0] != "Fredrick" || items[1] != "varilux" {
		t.Errorf("unexpected order: %v", items)
	}
}

func TestSaveCapsAtMax(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	userID := uuid.New()

	queries := []string{"a1", "b2", "c3", "d4", "e5", "f6", "g7", "h8", "i9", "j10"}
	for _, q := range queries {
		if err := store.Save(ctx, userID, q); err != nil {
			t.Fatalf("Save(%q) failed: %v", q, err)
		}
	}

	items, err := store.List(ctx, userID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 8 {
		t.Fatalf("expected 8 items, got %d: %v", len(items), items)
	}
	if items[0] != "j10" {
		t.Errorf("expected newest first, got %q", items[0])
	}
	for _, item := range items {
		if item == "a1" || item == "b2" {
			t.Errorf("oldest entries should have been evicted, found %q", item)
		}
	}
}

func TestSaveIgnoresBlankQuery(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	userID := uuid.New()

	if err := store.Save(ctx, userID, "   "); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	items, err := store.List(ctx, userID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("blank query should not be stored, got %v", items)
	}
}

func TestListRecoversFromCorruptValue(t *testing.T) {
	store, srv := newTestStore(t)
	ctx := context.Background()
	userID := uuid.New()

	srv.Set(key(userID), "{not json")

	items, err := store.List(ctx, userID)
	if err != nil {
		t.Fatalf("List should not fail on corrupt value: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty list, got %v", items)
	}
	if srv.Exists(key(userID)) {
		t.Error("corrupt value should have been deleted")
	}
}

func TestClear(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	userID := uuid.New()

	if err := store.Save(ctx, userID, "fredrick"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Clear(ctx, userID); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	items, err := store.List(ctx, userID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty list after Clear, got %v", items)
	}
}
