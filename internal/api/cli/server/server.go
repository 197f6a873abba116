package server

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dtroode/eventhub-auth/internal/api/cli/command"
	"github.com/dtroode/eventhub-auth/internal/logger"
	"github.com/dtroode/eventhub-auth/internal/model"
	"github.com/dtroode/eventhub-auth/internal/selector"
)

var _ model.Server = (*REPL)(nil)

// Dispatcher runs one parsed command.
type Dispatcher interface {
	Dispatch(ctx context.Context, out io.Writer, req command.Request) error
}

// StateSubscriber streams state snapshots.
type StateSubscriber interface {
	Subscribe() (<-chan model.AppState, func())
}

// REPL is a line-oriented terminal server. Commands run one at a time;
// pending workflows are announced from the state stream while they run.
type REPL struct {
	dispatcher Dispatcher
	states     StateSubscriber
	in         io.Reader
	out        *syncWriter
	prompt     string
	logger     *logger.Logger

	stop     chan struct{}
	stopOnce sync.Once
}

// NewREPL creates a REPL reading commands from in and writing to out.
func NewREPL(
	dispatcher Dispatcher,
	states StateSubscriber,
	in io.Reader,
	out io.Writer,
	prompt string,
	logger *logger.Logger,
) *REPL {
	return &REPL{
		dispatcher: dispatcher,
		states:     states,
		in:         in,
		out:        &syncWriter{w: out},
		prompt:     prompt,
		logger:     logger,
		stop:       make(chan struct{}),
	}
}

// Serve runs the loop until the input ends, the user exits, ctx is done or
// Stop is called.
func (s *REPL) Serve(ctx context.Context) error {
	defer s.Stop()

	updates, unsubscribe := s.states.Subscribe()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.watch(updates)
	}()
	defer func() {
		unsubscribe()
		wg.Wait()
	}()

	lines, scanErr := s.readLines()

	for {
		fmt.Fprint(s.out, s.prompt)

		select {
		case <-ctx.Done():
			return nil
		case <-s.stop:
			return nil
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(s.out)
				return <-scanErr
			}

			if quit := s.handle(ctx, line); quit {
				return nil
			}
		}
	}
}

// Stop ends Serve at the next prompt.
func (s *REPL) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
}

func (s *REPL) handle(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}

	switch parts[0] {
	case "exit", "quit":
		fmt.Fprintln(s.out, "Au revoir")
		return true
	}

	req := command.Request{Name: parts[0], Args: parts[1:]}
	if err := s.dispatcher.Dispatch(ctx, s.out, req); err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
	}

	return false
}

// readLines scans s.in in the background. The lines channel is closed at
// the end of input; scanErr then carries the scanner error, if any.
func (s *REPL) readLines() (<-chan string, <-chan error) {
	lines := make(chan string)
	scanErr := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-s.stop:
				scanErr <- nil
				return
			}
		}

		if err := scanner.Err(); err != nil {
			s.logger.Error("REPL: failed to read input", "error", err)
			scanErr <- fmt.Errorf("failed to read input: %w", err)
			return
		}
		scanErr <- nil
	}()

	return lines, scanErr
}

// watch announces every workflow that enters its pending state.
func (s *REPL) watch(updates <-chan model.AppState) {
	var authPending, profilePending bool

	for st := range updates {
		if p := selector.AuthPending(st); p != authPending {
			authPending = p
			if p {
				fmt.Fprintln(s.out, "… authentification en cours")
			}
		}

		if p := selector.ProfilePending(st); p != profilePending {
			profilePending = p
			if p {
				fmt.Fprintln(s.out, "… mise à jour du profil en cours")
			}
		}
	}
}

type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (w *syncWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.w.Write(p)
}
