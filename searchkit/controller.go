package searchkit

import (
	"context"
	"sync"
	"time"
)

// State is the observable phase of a search. Loading, errored, and
// empty-result are three distinct states and must be rendered distinctly:
// a spinner, an error panel, and an explicit "no results" panel.
type State int

const (
	// StateIdle means no active search.
	StateIdle State = iota
	// StateLoading means a query is committed and the fetch is in flight.
	StateLoading
	// StateError means the fetch failed.
	StateError
	// StateEmpty means the backend returned zero results for the query.
	StateEmpty
	// StateReady means results are available.
	StateReady
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateEmpty:
		return "empty"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Snapshot is the controller's externally visible state at a point in time.
type Snapshot struct {
	State    State
	Query    string
	Response *SearchResponse
	Err      error
}

// Searcher is the backend surface the controller depends on.
type Searcher interface {
	SearchGlobal(ctx context.Context, q string, limit int) (*SearchResponse, error)
}

// Controller drives a debounced global search: keystrokes go in, and a
// stream of snapshots comes out. Responses are cached for the staleness
// window; results for superseded queries are discarded by key comparison,
// never shown. There is no in-flight cancellation — last key wins.
type Controller struct {
	searcher Searcher
	cache    *ResponseCache
	recents  RecentStore
	urlState *URLState
	debounce *Debouncer
	onChange func(Snapshot)
	limit    int

	mu        sync.Mutex
	activeKey string
	snapshot  Snapshot
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithCache overrides the response cache.
func WithCache(cache *ResponseCache) ControllerOption {
	return func(c *Controller) { c.cache = cache }
}

// WithRecents attaches a recent-search store, written on every successful
// non-empty search.
func WithRecents(store RecentStore) ControllerOption {
	return func(c *Controller) { c.recents = store }
}

// WithURLState attaches shareable URL state, kept in sync with the
// committed query.
func WithURLState(state *URLState) ControllerOption {
	return func(c *Controller) { c.urlState = state }
}

// WithLimit sets the per-category result limit sent to the backend.
func WithLimit(limit int) ControllerOption {
	return func(c *Controller) { c.limit = limit }
}

// WithDebounceInterval overrides the quiet period before a query commits.
func WithDebounceInterval(interval time.Duration) ControllerOption {
	return func(c *Controller) {
		c.debounce = NewDebouncer(interval, c.commit)
	}
}

// WithOnChange registers a snapshot listener, called after every state
// transition.
func WithOnChange(fn func(Snapshot)) ControllerOption {
	return func(c *Controller) { c.onChange = fn }
}

// NewController creates a search controller around a backend client.
func NewController(searcher Searcher, opts ...ControllerOption) *Controller {
	c := &Controller{
		searcher: searcher,
		cache:    NewResponseCache(DefaultCacheTTL),
		snapshot: Snapshot{State: StateIdle},
	}
	c.debounce = NewDebouncer(DefaultDebounceInterval, c.commit)
	for _, opt := range opts {
		opt(c)
	}

	// A query carried in the URL restores the search on mount.
	if c.urlState != nil {
		if q := c.urlState.Query(); q != "" {
			c.commit(q)
		}
	}
	return c
}

// Input feeds a keystroke value. The backend query fires only after the
// debounce interval elapses without further input.
func (c *Controller) Input(value string) {
	c.debounce.Input(value)
}

// Clear resets the search immediately, bypassing the debounce timer.
func (c *Controller) Clear() {
	c.debounce.Clear()
}

// Raw returns the latest typed value for display.
func (c *Controller) Raw() string {
	return c.debounce.Raw()
}

// Snapshot returns the current observable state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot
}

// Close tears the controller down, cancelling any pending commit.
func (c *Controller) Close() {
	c.debounce.Stop()
	c.mu.Lock()
	c.activeKey = ""
	c.mu.Unlock()
}

func (c *Controller) commit(query string) {
	if c.urlState != nil {
		c.urlState.SetQuery(query)
	}

	if query == "" {
		c.transition("", Snapshot{State: StateIdle})
		return
	}

	key := CacheKey(query, c.limit)

	if cached, ok := c.cache.Get(key); ok {
		c.saveRecent(query)
		c.transition(key, snapshotFor(query, cached))
		return
	}

	c.transition(key, Snapshot{State: StateLoading, Query: query})

	go func() {
		response, err := c.searcher.SearchGlobal(context.Background(), query, c.limit)

		c.mu.Lock()
		if c.activeKey != key {
			// A newer query committed while this one was in flight.
			c.mu.Unlock()
			return
		}
		c.mu.Unlock()

		if err != nil {
			c.transitionIfActive(key, Snapshot{State: StateError, Query: query, Err: err})
			return
		}

		c.cache.Put(key, response)
		c.saveRecent(query)
		c.transitionIfActive(key, snapshotFor(query, response))
	}()
}

func snapshotFor(query string, response *SearchResponse) Snapshot {
	state := StateReady
	if response.TotalCount == 0 {
		state = StateEmpty
	}
	return Snapshot{State: state, Query: query, Response: response}
}

func (c *Controller) saveRecent(query string) {
	if c.recents != nil {
		c.recents.Save(query)
	}
}

func (c *Controller) transition(key string, next Snapshot) {
	c.mu.Lock()
	c.activeKey = key
	c.snapshot = next
	fn := c.onChange
	c.mu.Unlock()

	if fn != nil {
		fn(next)
	}
}

func (c *Controller) transitionIfActive(key string, next Snapshot) {
	c.mu.Lock()
	if c.activeKey != key {
		c.mu.Unlock()
		return
	}
	c.snapshot = next
	fn := c.onChange
	c.mu.Unlock()

	if fn != nil {
		fn(next)
	}
}
