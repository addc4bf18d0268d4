package searchkit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// MaxRecentSearches caps the recent-search ring.
const MaxRecentSearches = 8

// RecentStore persists the user's recent search terms. Implementations
// must recover from corrupt persisted data by returning an empty list, and
// writes are last-write-wins.
type RecentStore interface {
	// Get returns recent terms, most recent first.
	Get() []string
	// Save records a term at the front, deduplicating and capping the list.
	Save(term string)
}

// FileRecentStore keeps recent searches in a JSON file, the client-local
// equivalent of browser storage under a fixed key.
type FileRecentStore struct {
	mu   sync.Mutex
	path string
}

// NewFileRecentStore creates a store backed by the given file path.
func NewFileRecentStore(path string) *FileRecentStore {
	return &FileRecentStore{path: path}
}

// Get returns the persisted terms. Missing or unparseable content yields an
// empty list, never an error.
func (s *FileRecentStore) Get() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *FileRecentStore) read() []string {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return []string{}
	}
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return []string{}
	}
	return items
}

// Save records a term at the front of the list. Blank terms are ignored; a
// repeated term moves to the front instead of duplicating. Write failures
// are swallowed: losing a recent search is not worth surfacing.
func (s *FileRecentStore) Save(term string) {
	term = strings.TrimSpace(term)
	if term == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.read()
	next := make([]string, 0, len(items)+1)
	next = append(next, term)
	for _, item := range items {
		if strings.EqualFold(item, term) {
			continue
		}
		next = append(next, item)
	}
	if len(next) > MaxRecentSearches {
		next = next[:MaxRecentSearches]
	}

	raw, err := json.Marshal(next)
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return
	}
	_ = os.WriteFile(s.path, raw, 0o644)
}
