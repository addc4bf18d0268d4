package searchkit

import "testing"

type revenueFilters struct {
	Search string
	Status string
	Branch string
	Days   int
}

func newRevenueController() *ListController[revenueFilters, int] {
	return NewListController[revenueFilters, int](revenueFilters{Days: 7}, 20, ModeServer)
}

func TestEveryFilterMutationResetsPage(t *testing.T) {
	mutations := map[string]func(*revenueFilters){
		"search": func(f *revenueFilters) { f.Search = "fredrick" },
		"status": func(f *revenueFilters) { f.Status = "paid" },
		"branch": func(f *revenueFilters) { f.Branch = "main" },
		"dates":  func(f *revenueFilters) { f.Days = 30 },
	}

	for name, mutate := range mutations {
		ctl := newRevenueController()
		ctl.SetServerPage(nil, 100)
		ctl.Next()
		ctl.Next()
		if ctl.Page() == 0 {
			t.Fatalf("%s: setup failed, page still 0", name)
		}

		ctl.SetFilters(mutate)
		if ctl.Page() != 0 {
			t.Errorf("mutating %s filter must reset page to 0, got %d", name, ctl.Page())
		}
	}
}

func TestClearFiltersRestoresDefaults(t *testing.T) {
	ctl := newRevenueController()
	ctl.SetFilters(func(f *revenueFilters) {
		f.Search = "fredrick"
		f.Days = 30
	})

	ctl.ClearFilters()
	filters := ctl.Filters()
	if filters.Search != "" || filters.Days != 7 {
		t.Errorf("clear must restore documented defaults, got %+v", filters)
	}
	if ctl.Page() != 0 {
		t.Errorf("clear must reset page, got %d", ctl.Page())
	}
}

func TestPaginationBoundaries(t *testing.T) {
	ctl := newRevenueController()
	ctl.SetServerPage(nil, 95)

	if ctl.TotalPages() != 5 {
		t.Fatalf("expected ceil(95/20) = 5 pages, got %d", ctl.TotalPages())
	}
	if ctl.CanPrev() {
		t.Error("Previous must be disabled at page 0")
	}
	if !ctl.CanNext() {
		t.Error("Next must be enabled before the last page")
	}

	ctl.Last()
	if ctl.Page() != 4 {
		t.Fatalf("expected last page index 4, got %d", ctl.Page())
	}
	if ctl.CanNext() {
		t.Error("Next must be disabled at the last page")
	}
	if !ctl.CanPrev() {
		t.Error("Previous must be enabled at the last page")
	}

	ctl.Next()
	if ctl.Page() != 4 {
		t.Errorf("Next past the last page must be a no-op, got %d", ctl.Page())
	}

	ctl.First()
	ctl.Prev()
	if ctl.Page() != 0 {
		t.Errorf("Prev before page 0 must be a no-op, got %d", ctl.Page())
	}
}

func TestEmptyListDisplaysOnePage(t *testing.T) {
	ctl := newRevenueController()
	ctl.SetServerPage(nil, 0)

	if ctl.TotalPages() != 0 {
		t.Errorf("expected 0 computed pages, got %d", ctl.TotalPages())
	}
	if ctl.DisplayTotalPages() != 1 {
		t.Errorf("empty list must display as 1 page, got %d", ctl.DisplayTotalPages())
	}
}

func TestClientModeSlicing(t *testing.T) {
	ctl := NewListController[revenueFilters, int](revenueFilters{}, 3, ModeClient)

	ctl.SetClientItems([]int{1, 2, 3, 4, 5, 6, 7})
	if got := ctl.PageItems(); len(got) != 3 || got[0] != 1 {
		t.Fatalf("unexpected first page %v", got)
	}

	ctl.Last()
	if got := ctl.PageItems(); len(got) != 1 || got[0] != 7 {
		t.Fatalf("unexpected last page %v", got)
	}
	if ctl.TotalPages() != 3 {
		t.Errorf("expected 3 pages, got %d", ctl.TotalPages())
	}
}

func TestShowingRange(t *testing.T) {
	ctl := newRevenueController()
	ctl.SetServerPage(nil, 45)

	from, to := ctl.ShowingRange()
	if from != 1 || to != 20 {
		t.Errorf("expected Showing 1 to 20, got %d to %d", from, to)
	}

	ctl.Last()
	from, to = ctl.ShowingRange()
	if from != 41 || to != 45 {
		t.Errorf("expected Showing 41 to 45, got %d to %d", from, to)
	}

	ctl.SetServerPage(nil, 0)
	from, to = ctl.ShowingRange()
	if from != 0 || to != 0 {
		t.Errorf("expected empty range for zero rows, got %d to %d", from, to)
	}
}

func TestSkipTracksPage(t *testing.T) {
	ctl := newRevenueController()
	ctl.SetServerPage(nil, 100)
	ctl.Next()
	ctl.Next()
	if ctl.Skip() != 40 {
		t.Errorf("expected skip 40 on page 2, got %d", ctl.Skip())
	}
}
