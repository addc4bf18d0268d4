package searchkit

import (
	"strings"
	"sync"
	"time"
)

// DefaultDebounceInterval is the quiet period before a typed value commits.
const DefaultDebounceInterval = 350 * time.Millisecond

// Debouncer turns a stream of keystrokes into committed query values. The
// raw value updates on every keystroke so the caller's input stays
// responsive; the commit callback fires only after the configured quiet
// interval. Each keystroke cancels any pending uncommitted timer, so only
// the last value within a window survives.
type Debouncer struct {
	mu       sync.Mutex
	interval time.Duration
	raw      string
	timer    *time.Timer
	onCommit func(string)
}

// NewDebouncer creates a debouncer that calls onCommit with the trimmed
// settled value. A non-positive interval falls back to the default.
func NewDebouncer(interval time.Duration, onCommit func(string)) *Debouncer {
	if interval <= 0 {
		interval = DefaultDebounceInterval
	}
	return &Debouncer{interval: interval, onCommit: onCommit}
}

// Input records a keystroke value and restarts the quiet timer.
func (d *Debouncer) Input(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.raw = value
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, func() {
		d.mu.Lock()
		committed := strings.TrimSpace(d.raw)
		d.timer = nil
		d.mu.Unlock()
		d.onCommit(committed)
	})
}

// Raw returns the latest keystroke value, committed or not.
func (d *Debouncer) Raw() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.raw
}

// Clear resets the raw value and commits the empty query immediately,
// bypassing the quiet timer. This backs the explicit clear action (Escape).
func (d *Debouncer) Clear() {
	d.mu.Lock()
	d.raw = ""
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
	d.onCommit("")
}

// Stop cancels any pending commit without firing it. Used on teardown.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
