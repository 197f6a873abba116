package middleware

import (
	"context"
	"io"
	"time"

	"github.com/dtroode/eventhub-auth/internal/api/cli/command"
	"github.com/dtroode/eventhub-auth/internal/logger"
)

// Logging logs terminal commands and their results.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// Handle logs command name, duration and status for each request. Arguments
// are never logged since they may carry a password.
func (l *Logging) Handle(next command.Handler) command.Handler {
	return func(ctx context.Context, out io.Writer, req command.Request) error {
		start := time.Now()

		l.logger.Debug("CLI command started",
			"command", req.Name,
			"args", len(req.Args))

		err := next(ctx, out, req)

		duration := time.Since(start)

		status := "ok"
		if err != nil {
			status = "error"
		}

		l.logger.Info("CLI command completed",
			"command", req.Name,
			"duration_ms", duration.Milliseconds(),
			"status", status)

		if err != nil {
			l.logger.Warn("CLI command failed",
				"command", req.Name,
				"error", err.Error())
		}

		return err
	}
}
