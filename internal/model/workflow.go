package model

import (
	"context"
	"time"
)

// Default simulated network latencies.
const (
	DefaultRegisterDelay      = 1000 * time.Millisecond
	DefaultLoginDelay         = 800 * time.Millisecond
	DefaultProfileUpdateDelay = 800 * time.Millisecond
)

// Delayer simulates the network round trip of a workflow. It is the only
// point where a workflow suspends.
type Delayer interface {
	Delay(ctx context.Context, d time.Duration) error
}

// ProfileSyncer projects the authenticated user into the profile slice.
type ProfileSyncer interface {
	SyncFromAuth()
}
