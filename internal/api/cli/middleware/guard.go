package middleware

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/dtroode/eventhub-auth/internal/api/cli/command"
	"github.com/dtroode/eventhub-auth/internal/logger"
	"github.com/dtroode/eventhub-auth/internal/model"
)

// ErrBusy is returned when a workflow is submitted while another one is
// still running on the same slice.
var ErrBusy = errors.New("an operation is already in progress")

// Slice names the part of the state a workflow owns.
type Slice string

const (
	SliceAuth    Slice = "auth"
	SliceProfile Slice = "profile"
)

func (s Slice) pending(st model.AppState) bool {
	switch s {
	case SliceAuth:
		return st.Auth.IsPending
	case SliceProfile:
		return st.Profile.IsPending
	default:
		return false
	}
}

// StateReader exposes the current state snapshot.
type StateReader interface {
	State() model.AppState
}

// Guard keeps at most one workflow per slice in flight. An identical
// submission joins the running one; any other submission is rejected with
// ErrBusy.
type Guard struct {
	state    StateReader
	logger   *logger.Logger
	group    singleflight.Group
	mu       sync.Mutex
	inflight map[Slice]string
}

// NewGuard creates a new Guard middleware.
func NewGuard(state StateReader, logger *logger.Logger) *Guard {
	return &Guard{
		state:    state,
		logger:   logger,
		inflight: make(map[Slice]string),
	}
}

// For returns a middleware guarding workflows of slice.
func (g *Guard) For(slice Slice) command.Middleware {
	return func(next command.Handler) command.Handler {
		return func(ctx context.Context, out io.Writer, req command.Request) error {
			key := string(slice) + "/" + req.Name + "\x00" + strings.Join(req.Args, "\x00")

			if err := g.acquire(slice, key); err != nil {
				g.logger.Info("CLI guard: submission rejected",
					"slice", string(slice),
					"command", req.Name)
				return err
			}

			_, err, shared := g.group.Do(key, func() (interface{}, error) {
				defer g.release(slice, key)
				return nil, next(ctx, out, req)
			})

			if shared {
				g.logger.Debug("CLI guard: submission coalesced",
					"slice", string(slice),
					"command", req.Name)
			}

			return err
		}
	}
}

func (g *Guard) acquire(slice Slice, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if cur, ok := g.inflight[slice]; ok {
		if cur == key {
			return nil
		}
		return ErrBusy
	}

	if slice.pending(g.state.State()) {
		return ErrBusy
	}

	g.inflight[slice] = key
	return nil
}

func (g *Guard) release(slice Slice, key string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.inflight[slice] == key {
		delete(g.inflight, slice)
	}
}
