package searchkit

import (
	"context"
	"sync"
	"time"
)

// DefaultPollInterval is the auto-refresh cadence for live views.
const DefaultPollInterval = 5 * time.Second

// Poller invokes a refresh function on a fixed interval while enabled.
// Stop takes effect immediately: no further tick fires after it returns,
// matching the teardown contract of an auto-refresh toggle.
type Poller struct {
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewPoller creates a poller. A non-positive interval falls back to the
// default cadence.
func NewPoller(interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{interval: interval}
}

// Start begins polling, calling fn once per interval until Stop is called
// or ctx is cancelled. Starting an already running poller restarts it.
func (p *Poller) Start(ctx context.Context, fn func(context.Context)) {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	pollCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.mu.Unlock()

	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-pollCtx.Done():
				return
			case <-ticker.C:
				fn(pollCtx)
			}
		}
	}()
}

// Stop halts polling. Safe to call when not running.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

// Running reports whether the poller is active.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}
