package testutil

import (
	"context"
	"sync"
	"time"
)

// ManualDelayer blocks every Delay call until the test releases it, which
// makes the pending phase of a workflow observable.
type ManualDelayer struct {
	mu      sync.Mutex
	waiters []*waiter
	calls   []time.Duration
	changed chan struct{}
}

type waiter struct {
	d       time.Duration
	release chan struct{}
}

func NewManualDelayer() *ManualDelayer {
	return &ManualDelayer{changed: make(chan struct{})}
}

// Delay implements model.Delayer.
func (m *ManualDelayer) Delay(ctx context.Context, d time.Duration) error {
	w := &waiter{d: d, release: make(chan struct{})}

	m.mu.Lock()
	m.waiters = append(m.waiters, w)
	m.calls = append(m.calls, d)
	m.notifyLocked()
	m.mu.Unlock()

	select {
	case <-w.release:
		return nil
	case <-ctx.Done():
		m.mu.Lock()
		m.removeLocked(w)
		m.mu.Unlock()
		return ctx.Err()
	}
}

// AwaitPending blocks until at least n Delay calls are waiting.
func (m *ManualDelayer) AwaitPending(ctx context.Context, n int) error {
	for {
		m.mu.Lock()
		if len(m.waiters) >= n {
			m.mu.Unlock()
			return nil
		}
		ch := m.changed
		m.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// ReleaseAll wakes every waiting Delay call and returns how many were woken.
func (m *ManualDelayer) ReleaseAll() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(m.waiters)
	for _, w := range m.waiters {
		close(w.release)
	}
	m.waiters = nil
	m.notifyLocked()

	return n
}

// Calls returns the durations of every Delay call so far.
func (m *ManualDelayer) Calls() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]time.Duration, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *ManualDelayer) removeLocked(w *waiter) {
	for i, cur := range m.waiters {
		if cur == w {
			m.waiters = append(m.waiters[:i], m.waiters[i+1:]...)
			break
		}
	}
	m.notifyLocked()
}

func (m *ManualDelayer) notifyLocked() {
	close(m.changed)
	m.changed = make(chan struct{})
}

// InstantDelayer returns from Delay at once and records the durations.
type InstantDelayer struct {
	mu    sync.Mutex
	calls []time.Duration
}

// Delay implements model.Delayer.
func (d *InstantDelayer) Delay(ctx context.Context, dur time.Duration) error {
	d.mu.Lock()
	d.calls = append(d.calls, dur)
	d.mu.Unlock()

	return ctx.Err()
}

// Calls returns the durations of every Delay call so far.
func (d *InstantDelayer) Calls() []time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]time.Duration, len(d.calls))
	copy(out, d.calls)
	return out
}
