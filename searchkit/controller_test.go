package searchkit

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"
)

type fakeSearcher struct {
	mu        sync.Mutex
	responses map[string]*SearchResponse
	errs      map[string]error
	delays    map[string]time.Duration
	calls     map[string]int
}

func newFakeSearcher() *fakeSearcher {
	return &fakeSearcher{
		responses: make(map[string]*SearchResponse),
		errs:      make(map[string]error),
		delays:    make(map[string]time.Duration),
		calls:     make(map[string]int),
	}
}

func (f *fakeSearcher) SearchGlobal(ctx context.Context, q string, limit int) (*SearchResponse, error) {
	f.mu.Lock()
	f.calls[q]++
	delay := f.delays[q]
	err := f.errs[q]
	response := f.responses[q]
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if err != nil {
		return nil, err
	}
	if response == nil {
		response = &SearchResponse{Query: q, Results: NewResultSet()}
	}
	return response, nil
}

func (f *fakeSearcher) callCount(q string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[q]
}

func waitForState(t *testing.T, c *Controller, want State) Snapshot {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		snap := c.Snapshot()
		if snap.State == want {
			return snap
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for state %v, last state %v", want, c.Snapshot().State)
	return Snapshot{}
}

func TestControllerReachesReady(t *testing.T) {
	searcher := newFakeSearcher()
	searcher.responses["fredrick"] = fredrickResponse()

	c := NewController(searcher, WithDebounceInterval(10*time.Millisecond))
	defer c.Close()

	c.Input("fredrick")
	snap := waitForState(t, c, StateReady)
	if snap.Response.TotalCount != 3 {
		t.Errorf("expected 3 results, got %d", snap.Response.TotalCount)
	}
}

func TestControllerEmptyResultsAreExplicit(t *testing.T) {
	searcher := newFakeSearcher()
	searcher.responses["nobody"] = &SearchResponse{Query: "nobody", TotalCount: 0, Results: NewResultSet()}

	c := NewController(searcher, WithDebounceInterval(10*time.Millisecond))
	defer c.Close()

	c.Input("nobody")
	snap := waitForState(t, c, StateEmpty)
	if snap.State != StateEmpty {
		t.Fatalf("zero results must be the explicit empty state, got %v", snap.State)
	}
	if snap.Err != nil {
		t.Errorf("empty is not an error: %v", snap.Err)
	}
}

func TestControllerErrorIsDistinctState(t *testing.T) {
	searcher := newFakeSearcher()
	searcher.errs["fredrick"] = errors.New("backend down")

	c := NewController(searcher, WithDebounceInterval(10*time.Millisecond))
	defer c.Close()

	c.Input("fredrick")
	snap := waitForState(t, c, StateError)
	if snap.Err == nil {
		t.Error("error state must carry the failure")
	}
	if snap.Response != nil {
		t.Error("error state must not carry results")
	}
}

func TestControllerStaleResponseDiscarded(t *testing.T) {
	searcher := newFakeSearcher()
	searcher.responses["slow"] = &SearchResponse{Query: "slow", TotalCount: 99, Results: NewResultSet()}
	searcher.delays["slow"] = 200 * time.Millisecond
	searcher.responses["fast"] = fredrickResponse()

	c := NewController(searcher, WithDebounceInterval(5*time.Millisecond))
	defer c.Close()

	c.Input("slow")
	waitForState(t, c, StateLoading)
	c.Input("fast")
	snap := waitForState(t, c, StateReady)
	if snap.Query != "fast" {
		t.Fatalf("expected the newer query's results, got %q", snap.Query)
	}

	// Give the slow response time to land; it must not overwrite.
	time.Sleep(300 * time.Millisecond)
	snap = c.Snapshot()
	if snap.Query != "fast" || snap.Response.TotalCount != 3 {
		t.Errorf("stale response overwrote newer results: %+v", snap)
	}
}

func TestControllerCacheSuppressesRefetch(t *testing.T) {
	searcher := newFakeSearcher()
	searcher.responses["fredrick"] = fredrickResponse()

	c := NewController(searcher, WithDebounceInterval(5*time.Millisecond))
	defer c.Close()

	c.Input("fredrick")
	waitForState(t, c, StateReady)

	c.Input("")
	waitForState(t, c, StateIdle)

	c.Input("fredrick")
	waitForState(t, c, StateReady)

	if got := searcher.callCount("fredrick"); got != 1 {
		t.Errorf("identical query within the staleness window must not refetch, got %d calls", got)
	}
}

func TestControllerSavesRecentOnSuccess(t *testing.T) {
	searcher := newFakeSearcher()
	searcher.responses["fredrick"] = fredrickResponse()
	store, _ := newTestRecentStore(t)

	c := NewController(searcher,
		WithDebounceInterval(5*time.Millisecond),
		WithRecents(store),
	)
	defer c.Close()

	c.Input("fredrick")
	waitForState(t, c, StateReady)

	items := store.Get()
	if len(items) != 1 || items[0] != "fredrick" {
		t.Errorf("successful search must be recorded, got %v", items)
	}
}

func TestControllerFailedSearchNotRecorded(t *testing.T) {
	searcher := newFakeSearcher()
	searcher.errs["fredrick"] = errors.New("backend down")
	store, _ := newTestRecentStore(t)

	c := NewController(searcher,
		WithDebounceInterval(5*time.Millisecond),
		WithRecents(store),
	)
	defer c.Close()

	c.Input("fredrick")
	waitForState(t, c, StateError)

	if items := store.Get(); len(items) != 0 {
		t.Errorf("failed search must not be recorded, got %v", items)
	}
}

func TestControllerSyncsURLState(t *testing.T) {
	searcher := newFakeSearcher()
	searcher.responses["fredrick"] = fredrickResponse()
	state := NewURLState(url.Values{})

	c := NewController(searcher,
		WithDebounceInterval(5*time.Millisecond),
		WithURLState(state),
	)
	defer c.Close()

	c.Input("fredrick")
	waitForState(t, c, StateReady)
	if state.Query() != "fredrick" {
		t.Errorf("committed query must be written to URL state, got %q", state.Query())
	}

	c.Clear()
	waitForState(t, c, StateIdle)
	if state.Query() != "" {
		t.Errorf("clearing must remove the URL key, got %q", state.Query())
	}
	if state.Encode() != "" {
		t.Errorf("no active search means no q parameter, got %q", state.Encode())
	}
}

func TestControllerRestoresQueryFromURL(t *testing.T) {
	searcher := newFakeSearcher()
	searcher.responses["fredrick"] = fredrickResponse()
	state := NewURLState(url.Values{QueryParamKey: {"fredrick"}})

	c := NewController(searcher,
		WithDebounceInterval(5*time.Millisecond),
		WithURLState(state),
	)
	defer c.Close()

	snap := waitForState(t, c, StateReady)
	if snap.Query != "fredrick" {
		t.Errorf("query carried in the URL must restore the search, got %q", snap.Query)
	}
}
