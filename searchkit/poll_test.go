package searchkit

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestPollerTicksWhileRunning(t *testing.T) {
	var ticks atomic.Int32
	p := NewPoller(20 * time.Millisecond)

	p.Start(context.Background(), func(context.Context) { ticks.Add(1) })
	time.Sleep(110 * time.Millisecond)
	p.Stop()

	if got := ticks.Load(); got < 3 {
		t.Errorf("expected several ticks, got %d", got)
	}
}

func TestPollerStopsImmediately(t *testing.T) {
	var ticks atomic.Int32
	p := NewPoller(20 * time.Millisecond)

	p.Start(context.Background(), func(context.Context) { ticks.Add(1) })
	time.Sleep(50 * time.Millisecond)
	p.Stop()

	settled := ticks.Load()
	time.Sleep(100 * time.Millisecond)
	if got := ticks.Load(); got != settled {
		t.Errorf("ticks continued after Stop: %d -> %d", settled, got)
	}
	if p.Running() {
		t.Error("poller should report stopped")
	}
}

func TestPollerStopWithoutStart(t *testing.T) {
	p := NewPoller(0)
	p.Stop()
	if p.Running() {
		t.Error("unused poller should not be running")
	}
}

func TestPollerContextCancellation(t *testing.T) {
	var ticks atomic.Int32
	p := NewPoller(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx, func(context.Context) { ticks.Add(1) })
	time.Sleep(50 * time.Millisecond)
	cancel()

	settled := ticks.Load()
	time.Sleep(100 * time.Millisecond)
	if got := ticks.Load(); got != settled {
		t.Errorf("ticks continued after context cancel: %d -> %d", settled, got)
	}
}
