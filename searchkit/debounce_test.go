package searchkit

import (
	"sync"
	"testing"
	"time"
)

type commitRecorder struct {
	mu      sync.Mutex
	commits []string
}

func (r *commitRecorder) record(value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commits = append(r.commits, value)
}

func (r *commitRecorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.commits...)
}

func TestDebounceCoalescesRapidKeystrokes(t *testing.T) {
	rec := &commitRecorder{}
	d := NewDebouncer(50*time.Millisecond, rec.record)
	defer d.Stop()

	for _, v := range []string{"F", "Fr", "Fre", "Fred", "Fredrick"} {
		d.Input(v)
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(150 * time.Millisecond)

	commits := rec.all()
	if len(commits) != 1 {
		t.Fatalf("expected exactly one commit, got %d: %v", len(commits), commits)
	}
	if commits[0] != "Fredrick" {
		t.Errorf("expected the final settled value, got %q", commits[0])
	}
}

func TestDebounceCommitsTrimmedValue(t *testing.T) {
	rec := &commitRecorder{}
	d := NewDebouncer(20*time.Millisecond, rec.record)
	defer d.Stop()

	d.Input("  fredrick  ")
	time.Sleep(80 * time.Millisecond)

	commits := rec.all()
	if len(commits) != 1 || commits[0] != "fredrick" {
		t.Fatalf("expected one trimmed commit, got %v", commits)
	}
}

func TestSlowKeystrokesEachCommit(t *testing.T) {
	rec := &commitRecorder{}
	d := NewDebouncer(20*time.Millisecond, rec.record)
	defer d.Stop()

	d.Input("a")
	time.Sleep(60 * time.Millisecond)
	d.Input("ab")
	time.Sleep(60 * time.Millisecond)

	commits := rec.all()
	if len(commits) != 2 {
		t.Fatalf("expected two commits for keystrokes slower than the interval, got %v", commits)
	}
}

func TestClearBypassesTimer(t *testing.T) {
	rec := &commitRecorder{}
	d := NewDebouncer(10*time.Second, rec.record)
	defer d.Stop()

	d.Input("fredrick")
	d.Clear()

	commits := rec.all()
	if len(commits) != 1 || commits[0] != "" {
		t.Fatalf("Clear should commit empty immediately, got %v", commits)
	}
	if d.Raw() != "" {
		t.Errorf("Clear should reset the raw value, got %q", d.Raw())
	}

	// The pending timer for "fredrick" must never fire.
	time.Sleep(50 * time.Millisecond)
	if got := rec.all(); len(got) != 1 {
		t.Errorf("cancelled timer fired anyway: %v", got)
	}
}

func TestRawUpdatesImmediately(t *testing.T) {
	d := NewDebouncer(10*time.Second, func(string) {})
	defer d.Stop()

	d.Input("f")
	if d.Raw() != "f" {
		t.Errorf("raw value should update on every keystroke, got %q", d.Raw())
	}
}
