// Package delay simulates network latency for the in-memory workflows.
package delay

import (
	"context"
	"time"

	"github.com/dtroode/eventhub-auth/internal/model"
)

var _ model.Delayer = (*Timer)(nil)

// Timer waits on a real timer.
type Timer struct{}

// NewTimer creates a Timer.
func NewTimer() *Timer {
	return &Timer{}
}

// Delay waits for d or until ctx is done, whichever comes first. A
// non-positive d returns at once.
func (Timer) Delay(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
