package router

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/dtroode/eventhub-auth/internal/api/cli/command"
	"github.com/dtroode/eventhub-auth/internal/api/cli/handler"
	"github.com/dtroode/eventhub-auth/internal/api/cli/middleware"
	"github.com/dtroode/eventhub-auth/internal/logger"
)

// ErrUnknownCommand is returned for a command word with no route.
var ErrUnknownCommand = errors.New("unknown command")

// Router maps command words to handlers wrapped in middleware.
type Router struct {
	handler *handler.Handler
	state   middleware.StateReader
	logger  *logger.Logger
	routes  map[string]command.Handler
}

// New creates new Router instance and registers every command.
func New(h *handler.Handler, state middleware.StateReader, logger *logger.Logger) *Router {
	r := &Router{
		handler: h,
		state:   state,
		logger:  logger,
		routes:  make(map[string]command.Handler),
	}
	r.register()

	return r
}

func (r *Router) register() {
	logging := middleware.NewLogging(r.logger)
	guard := middleware.NewGuard(r.state, r.logger)

	authFlow := []command.Middleware{logging.Handle, guard.For(middleware.SliceAuth)}
	profileFlow := []command.Middleware{logging.Handle, guard.For(middleware.SliceProfile)}
	plain := []command.Middleware{logging.Handle}

	r.routes["register"] = command.Chain(r.handler.Register, authFlow...)
	r.routes["login"] = command.Chain(r.handler.Login, authFlow...)
	r.routes["logout"] = command.Chain(r.handler.Logout, plain...)

	r.routes["save"] = command.Chain(r.handler.Save, profileFlow...)
	r.routes["profile"] = command.Chain(r.handler.Profile, plain...)
	r.routes["edit"] = command.Chain(r.handler.Edit, plain...)
	r.routes["cancel"] = command.Chain(r.handler.Cancel, plain...)
	r.routes["set"] = command.Chain(r.handler.Set, plain...)
	r.routes["apply"] = command.Chain(r.handler.Apply, plain...)

	r.routes["clear"] = command.Chain(r.handler.Clear, plain...)
	r.routes["state"] = command.Chain(r.handler.State, plain...)
	r.routes["help"] = command.Chain(r.handler.Help, plain...)
}

// Dispatch runs the handler registered for req.Name.
func (r *Router) Dispatch(ctx context.Context, out io.Writer, req command.Request) error {
	h, ok := r.routes[req.Name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, req.Name)
	}

	return h(ctx, out, req)
}

// Commands returns the registered command words in order.
func (r *Router) Commands() []string {
	names := make([]string, 0, len(r.routes))
	for name := range r.routes {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
