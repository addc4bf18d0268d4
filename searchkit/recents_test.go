package searchkit

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestRecentStore(t *testing.T) (*FileRecentStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recent_searches.json")
	return NewFileRecentStore(path), path
}

func TestRecentStoreEmptyWhenMissing(t *testing.T) {
	store, _ := newTestRecentStore(t)
	if items := store.Get(); len(items) != 0 {
		t.Fatalf("expected empty list, got %v", items)
	}
}

func TestRecentStoreSaveMovesToFrontWithoutDuplicates(t *testing.T) {
	store, _ := newTestRecentStore(t)

	store.Save("fredrick")
	store.Save("varilux")
	store.Save("fredrick")

	items := store.Get()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %v", items)
	}
	if items[0] != "fredrick" || items[1] != "varilux" {
		t.Errorf("re-searched term should move to the front: %v", items)
	}
	seen := map[string]int{}
	for _, item := range items {
		seen[item]++
	}
	if seen["fredrick"] != 1 {
		t.Errorf("expected no duplicates, got %v", items)
	}
}

func TestRecentStoreCapsAtEight(t *testing.T) {
	store, _ := newTestRecentStore(t)

	terms := []string{"t1", "t2", "t3", "t4", "t5", "t6", "t7", "t8", "t9"}
	for _, term := range terms {
		store.Save(term)
	}

	items := store.Get()
	if len(items) != MaxRecentSearches {
		t.Fatalf("expected %d items, got %d: %v", MaxRecentSearches, len(items), items)
	}
	if items[0] != "t9" {
		t.Errorf("expected newest first, got %q", items[0])
	}
	for _, item := range items {
		if item == "t1" {
			t.Error("oldest term should have been evicted")
		}
	}
}

func TestRecentStoreIgnoresBlankTerms(t *testing.T) {
	store, _ := newTestRecentStore(t)
	store.Save("   ")
	if items := store.Get(); len(items) != 0 {
		t.Fatalf("blank term should not be stored, got %v", items)
	}
}

func TestRecentStoreRecoversFromCorruptFile(t *testing.T) {
	store, path := newTestRecentStore(t)

	if err := os.WriteFile(path, []byte("{definitely not json"), 0o644); err != nil {
		t.Fatalf("failed to write corrupt file: %v", err)
	}

	if items := store.Get(); len(items) != 0 {
		t.Fatalf("corrupt content should yield an empty list, got %v", items)
	}

	// A save after corruption starts fresh rather than failing.
	store.Save("fredrick")
	items := store.Get()
	if len(items) != 1 || items[0] != "fredrick" {
		t.Fatalf("expected a fresh list after corruption, got %v", items)
	}
}
