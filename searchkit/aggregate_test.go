package searchkit

import "testing"

func fredrickResponse() *SearchResponse {
	results := NewResultSet()
	results.Set("patients", []SearchResult{
		{ID: 1, Title: "Fredrick Olsen", URL: "/patients/1"},
		{ID: 2, Title: "Fredrick Hale", URL: "/patients/2"},
	})
	results.Set("staff", []SearchResult{
		{ID: 7, Title: "Fredrick Mills", URL: "/staff/7"},
	})
	return &SearchResponse{Query: "Fredrick", TotalCount: 3, Results: results}
}

func TestPillsForFredrickScenario(t *testing.T) {
	agg := NewAggregation(fredrickResponse())

	pills := agg.Pills()
	if len(pills) != 3 {
		t.Fatalf("expected All + 2 category pills, got %d: %v", len(pills), pills)
	}
	if pills[0].Key != AllPillKey || pills[0].Label != "All (3)" {
		t.Errorf("expected default All (3) pill, got %+v", pills[0])
	}
	if pills[1].Label != "Patients (2)" {
		t.Errorf("expected Patients (2), got %q", pills[1].Label)
	}
	if pills[2].Label != "Staff (1)" {
		t.Errorf("expected Staff (1), got %q", pills[2].Label)
	}
	if agg.ActiveFilter != AllPillKey {
		t.Error("All should be selected by default")
	}
	if agg.Headline() != `Found 3 results for "Fredrick"` {
		t.Errorf("unexpected headline %q", agg.Headline())
	}
}

func TestToggleIsIdempotentPair(t *testing.T) {
	agg := NewAggregation(fredrickResponse())
	before := agg.ActiveFilter

	agg.Toggle("patients")
	if agg.ActiveFilter != "patients" {
		t.Fatalf("expected patients selected, got %q", agg.ActiveFilter)
	}
	agg.Toggle("patients")
	if agg.ActiveFilter != before {
		t.Errorf("toggle(toggle(state, C), C) should restore the state, got %q", agg.ActiveFilter)
	}
}

func TestToggleSwitchesBetweenCategories(t *testing.T) {
	agg := NewAggregation(fredrickResponse())

	agg.Toggle("patients")
	agg.Toggle("staff")
	if agg.ActiveFilter != "staff" {
		t.Errorf("selecting a different pill should switch, got %q", agg.ActiveFilter)
	}
}

func TestGroupsFollowBackendOrder(t *testing.T) {
	agg := NewAggregation(fredrickResponse())

	groups := agg.Groups()
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Descriptor.Key != "patients" || groups[1].Descriptor.Key != "staff" {
		t.Errorf("groups must keep backend category order, got %q then %q",
			groups[0].Descriptor.Key, groups[1].Descriptor.Key)
	}
}

func TestGroupsWithActiveFilter(t *testing.T) {
	agg := NewAggregation(fredrickResponse())
	agg.Toggle("staff")

	groups := agg.Groups()
	if len(groups) != 1 || groups[0].Descriptor.Key != "staff" {
		t.Fatalf("expected only the staff group, got %v", groups)
	}

	// Filtering on a category with no hits yields an empty view.
	agg.ActiveFilter = "visits"
	if got := agg.Groups(); len(got) != 0 {
		t.Errorf("expected no groups for an absent category, got %v", got)
	}
}

func TestTotalCountMatchesGroupSum(t *testing.T) {
	response := fredrickResponse()

	sum := 0
	for pair := response.Results.Oldest(); pair != nil; pair = pair.Next() {
		sum += len(pair.Value)
	}
	if response.TotalCount != sum {
		t.Errorf("total_count %d should equal the sum of group lengths %d", response.TotalCount, sum)
	}
}
