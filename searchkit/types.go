// Package searchkit is a client toolkit for the clinic's global search and
// list endpoints: a debounced query controller with shareable URL state, a
// short-TTL response cache keyed by the full query tuple, a recent-search
// store, category display classification, result aggregation, and a generic
// list/filter/paginate controller.
package searchkit

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// SearchResult is a single hit within a category. Identity is
// (category, ID); the same numeric ID may recur across categories. URL is an
// opaque routing instruction from the backend; the client navigates by it
// without constructing or validating it.
type SearchResult struct {
	ID       int64                  `json:"id"`
	Title    string                 `json:"title"`
	Subtitle string                 `json:"subtitle"`
	URL      string                 `json:"url"`
	Meta     map[string]interface{} `json:"meta,omitempty"`
}

// ResultSet maps category keys to their hits, preserving the order the
// backend returned the categories in. The client never re-sorts categories
// or items; it trusts backend ranking.
type ResultSet = orderedmap.OrderedMap[string, []SearchResult]

// NewResultSet creates an empty, insertion-ordered result set.
func NewResultSet() *ResultSet {
	return orderedmap.New[string, []SearchResult]()
}

// SearchResponse is the backend's reply to a global search.
// TotalCount equals the sum of the group lengths in Results; the backend is
// the source of truth and the client does not re-verify it.
type SearchResponse struct {
	Query      string     `json:"query"`
	TotalCount int        `json:"total_count"`
	Results    *ResultSet `json:"results"`
}

// GroupLen returns the number of hits in one category, zero when absent.
func (r *SearchResponse) GroupLen(category string) int {
	if r == nil || r.Results == nil {
		return 0
	}
	items, ok := r.Results.Get(category)
	if !ok {
		return 0
	}
	return len(items)
}
