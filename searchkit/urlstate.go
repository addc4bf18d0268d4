package searchkit

import "net/url"

// QueryParamKey is the shareable URL parameter holding the active search.
const QueryParamKey = "q"

// URLState keeps the active search string synchronized with URL query
// parameters so search state is linkable and survives a reload. Absence of
// the key means "no active search".
type URLState struct {
	values url.Values
}

// NewURLState wraps existing query parameters, e.g. parsed from the
// current location. Passing nil starts from empty state.
func NewURLState(values url.Values) *URLState {
	if values == nil {
		values = url.Values{}
	}
	return &URLState{values: values}
}

// Query returns the active search string, empty when none is set.
func (s *URLState) Query() string {
	return s.values.Get(QueryParamKey)
}

// SetQuery writes a non-empty search under the fixed key and removes the
// key entirely for an empty search.
func (s *URLState) SetQuery(q string) {
	if q == "" {
		s.values.Del(QueryParamKey)
		return
	}
	s.values.Set(QueryParamKey, q)
}

// Encode renders the state as a URL query string.
func (s *URLState) Encode() string {
	return s.values.Encode()
}

// Values exposes the underlying parameters for composing with other state.
func (s *URLState) Values() url.Values {
	return s.values
}
