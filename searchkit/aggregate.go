package searchkit

import "fmt"

// AllPillKey identifies the synthetic "all categories" pill.
const AllPillKey = ""

// Pill is one selectable category filter with its hit count.
type Pill struct {
	Key   string
	Label string
	Count int
}

// Group is one rendered category with its display descriptor and hits.
type Group struct {
	Descriptor CategoryDescriptor
	Items      []SearchResult
}

// Aggregation is the filtered view over a search response. The zero value
// of ActiveFilter means "all categories".
type Aggregation struct {
	Response     *SearchResponse
	ActiveFilter string
}

// NewAggregation wraps a response with no category filter active.
func NewAggregation(response *SearchResponse) *Aggregation {
	return &Aggregation{Response: response}
}

// Toggle selects a category pill, or deselects it when it is already the
// active filter (radio-with-deselect, not a strict radio).
func (a *Aggregation) Toggle(key string) {
	if a.ActiveFilter == key {
		a.ActiveFilter = AllPillKey
		return
	}
	a.ActiveFilter = key
}

// Pills returns the "All (N)" pill followed by one pill per category, in
// the order the backend returned the categories.
func (a *Aggregation) Pills() []Pill {
	pills := []Pill{{
		Key:   AllPillKey,
		Label: fmt.Sprintf("All (%d)", a.total()),
		Count: a.total(),
	}}
	if a.Response == nil || a.Response.Results == nil {
		return pills
	}

	for pair := a.Response.Results.Oldest(); pair != nil; pair = pair.Next() {
		pills = append(pills, Pill{
			Key:   pair.Key,
			Label: fmt.Sprintf("%s (%d)", Classify(pair.Key).Label, len(pair.Value)),
			Count: len(pair.Value),
		})
	}
	return pills
}

// Groups returns the categories to render under the current filter: all of
// them in backend order when no filter is active, or just the selected one.
// A filter naming a category with no results yields an empty list.
func (a *Aggregation) Groups() []Group {
	if a.Response == nil || a.Response.Results == nil {
		return []Group{}
	}

	groups := make([]Group, 0, a.Response.Results.Len())
	for pair := a.Response.Results.Oldest(); pair != nil; pair = pair.Next() {
		if a.ActiveFilter != AllPillKey && a.ActiveFilter != pair.Key {
			continue
		}
		groups = append(groups, Group{
			Descriptor: Classify(pair.Key),
			Items:      pair.Value,
		})
	}
	return groups
}

// Headline renders the result summary line, e.g.
// "Found 3 results for 'Fredrick'".
func (a *Aggregation) Headline() string {
	query := ""
	if a.Response != nil {
		query = a.Response.Query
	}
	return fmt.Sprintf("Found %d results for %q", a.total(), query)
}

func (a *Aggregation) total() int {
	if a.Response == nil {
		return 0
	}
	return a.Response.TotalCount
}
