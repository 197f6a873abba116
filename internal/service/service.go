// Package service implements the workflows behind every dispatched action.
//
// A workflow commits its start transition, suspends once in the injected
// model.Delayer, then commits exactly one terminal transition. Failures are
// never returned: they end up as the LastError of the slice the workflow
// owns.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/dtroode/eventhub-auth/internal/model"
	"github.com/dtroode/eventhub-auth/internal/store"
)

// StateStore is the state container the workflows read and commit to.
type StateStore interface {
	State() model.AppState
	Commit(m store.Mutation) error
}

// wait suspends for d. Cancellation during the wait is reported as
// model.ErrCanceled so the caller still commits a terminal transition.
func wait(ctx context.Context, delayer model.Delayer, d time.Duration) error {
	if err := delayer.Delay(ctx, d); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return model.ErrCanceled
		}
		return err
	}
	return nil
}
