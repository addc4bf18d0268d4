// Package transport defines the wire DTOs for the global search endpoint.
package transport

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// SearchRequest is the query-string contract for GET /search/global.
// A query only reaches the backend once the client-side debounce committed a
// trimmed, non-empty value, so `q` is required here.
type SearchRequest struct {
	Query string `form:"q" validate:"required,min=1,max=100"`
	Limit int    `form:"limit" validate:"omitempty,min=1,max=50"`
}

// SearchResult is a single hit within a category. Identity is
// (category, ID); the same numeric ID may recur across categories.
// URL is an opaque frontend routing instruction; clients navigate by it
// without constructing or validating it.
type SearchResult struct {
	ID       int64                  `json:"id"`
	Title    string                 `json:"title"`
	Subtitle string                 `json:"subtitle"`
	URL      string                 `json:"url"`
	Meta     map[string]interface{} `json:"meta,omitempty"`
}

// ResultSet maps category keys to their hits while preserving insertion
// order. A plain Go map would randomize category order in JSON; clients
// render categories exactly as the backend ranked them.
type ResultSet = orderedmap.OrderedMap[string, []SearchResult]

// NewResultSet creates an empty, insertion-ordered result set.
func NewResultSet() *ResultSet {
	return orderedmap.New[string, []SearchResult]()
}

// SearchResponse is the envelope for GET /search/global.
// TotalCount always equals the sum of the group lengths in Results.
type SearchResponse struct {
	Query      string     `json:"query"`
	TotalCount int        `json:"total_count"`
	Results    *ResultSet `json:"results"`
}

// RecentSearchesResponse is the envelope for GET /search/recent.
type RecentSearchesResponse struct {
	Items []string `json:"items"`
}
