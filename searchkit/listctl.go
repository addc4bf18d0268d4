package searchkit

import "sync"

// PaginationMode selects who slices the data into pages.
type PaginationMode int

const (
	// ModeServer means each page is fetched with skip/limit parameters and
	// the backend reports the total.
	ModeServer PaginationMode = iota
	// ModeClient means the full filtered set is fetched once and sliced
	// into pages locally.
	ModeClient
)

// ListController is the generic list/filter/paginate state machine shared
// by the audit-log, revenue, and referral views. F is the page's filter
// record; T is the row type. Every filter mutation resets the page index
// to zero, for every filter field.
type ListController[F any, T any] struct {
	mu       sync.Mutex
	filters  F
	defaults F
	mode     PaginationMode
	page     int
	pageSize int
	total    int
	items    []T
}

// NewListController creates a controller with the given filter defaults.
// Clearing filters restores these defaults, not empty values.
func NewListController[F any, T any](defaults F, pageSize int, mode PaginationMode) *ListController[F, T] {
	if pageSize < 1 {
		pageSize = 20
	}
	return &ListController[F, T]{
		filters:  defaults,
		defaults: defaults,
		mode:     mode,
		pageSize: pageSize,
	}
}

// Filters returns the current filter record.
func (l *ListController[F, T]) Filters() F {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.filters
}

// SetFilters applies a mutation to the filter record and resets the page
// index to zero.
func (l *ListController[F, T]) SetFilters(mutate func(*F)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	mutate(&l.filters)
	l.page = 0
}

// ClearFilters restores every filter field to its documented default and
// resets the page index.
func (l *ListController[F, T]) ClearFilters() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.filters = l.defaults
	l.page = 0
}

// SetServerPage installs one fetched page and the backend-reported total.
func (l *ListController[F, T]) SetServerPage(items []T, total int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = items
	l.total = total
	l.clampPage()
}

// SetClientItems installs the full filtered set for local slicing.
func (l *ListController[F, T]) SetClientItems(items []T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = items
	l.total = len(items)
	l.clampPage()
}

// PageItems returns the rows for the current page.
func (l *ListController[F, T]) PageItems() []T {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.mode == ModeServer {
		return l.items
	}

	start := l.page * l.pageSize
	if start >= len(l.items) {
		return []T{}
	}
	end := start + l.pageSize
	if end > len(l.items) {
		end = len(l.items)
	}
	return l.items[start:end]
}

// Page returns the zero-based page index.
func (l *ListController[F, T]) Page() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.page
}

// PageSize returns the fixed page size.
func (l *ListController[F, T]) PageSize() int {
	return l.pageSize
}

// Total returns the total matching row count.
func (l *ListController[F, T]) Total() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.total
}

// TotalPages returns ceil(total / pageSize).
func (l *ListController[F, T]) TotalPages() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalPages()
}

// DisplayTotalPages is TotalPages floored at one, the convention for
// rendering "Page X of Y" when the list is empty.
func (l *ListController[F, T]) DisplayTotalPages() int {
	pages := l.TotalPages()
	if pages < 1 {
		return 1
	}
	return pages
}

func (l *ListController[F, T]) totalPages() int {
	return (l.total + l.pageSize - 1) / l.pageSize
}

func (l *ListController[F, T]) clampPage() {
	last := l.totalPages() - 1
	if last < 0 {
		last = 0
	}
	if l.page > last {
		l.page = last
	}
}

// CanPrev reports whether Previous/First controls are enabled.
func (l *ListController[F, T]) CanPrev() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.page > 0
}

// CanNext reports whether Next/Last controls are enabled.
func (l *ListController[F, T]) CanNext() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.page < l.totalPages()-1
}

// Next advances one page when possible.
func (l *ListController[F, T]) Next() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.page < l.totalPages()-1 {
		l.page++
	}
}

// Prev steps back one page when possible.
func (l *ListController[F, T]) Prev() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.page > 0 {
		l.page--
	}
}

// First jumps to page zero.
func (l *ListController[F, T]) First() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.page = 0
}

// Last jumps to the final page.
func (l *ListController[F, T]) Last() {
	l.mu.Lock()
	defer l.mu.Unlock()
	last := l.totalPages() - 1
	if last < 0 {
		last = 0
	}
	l.page = last
}

// Skip returns the server-mode offset parameter for the current page.
func (l *ListController[F, T]) Skip() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.page * l.pageSize
}

// ShowingRange returns the one-based "Showing X to Y of Z" bounds.
// An empty list yields (0, 0).
func (l *ListController[F, T]) ShowingRange() (int, int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.total == 0 {
		return 0, 0
	}
	from := l.page*l.pageSize + 1
	to := from + l.pageSize - 1
	if to > l.total {
		to = l.total
	}
	return from, to
}
