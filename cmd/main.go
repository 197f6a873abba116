package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dtroode/eventhub-auth/internal/api/cli/handler"
	"github.com/dtroode/eventhub-auth/internal/api/cli/router"
	"github.com/dtroode/eventhub-auth/internal/api/cli/server"
	"github.com/dtroode/eventhub-auth/internal/app"
	"github.com/dtroode/eventhub-auth/internal/config"
	"github.com/dtroode/eventhub-auth/internal/delay"
	"github.com/dtroode/eventhub-auth/internal/logger"
	"github.com/dtroode/eventhub-auth/internal/model"
	"github.com/dtroode/eventhub-auth/internal/repository/fixture"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	application := app.New(cfg.Delays, delay.NewTimer(), logger)

	if cfg.Seed.File != "" {
		if err := application.Seed(ctx, fixture.NewUserRepository(cfg.Seed.File)); err != nil {
			logger.Fatal("failed to seed users", "error", err, "file", cfg.Seed.File)
		}
	}

	logAppVersion()

	repl := registerREPL(application, logger, cfg.CLI.Prompt)

	go func() {
		<-ctx.Done()
		repl.Stop()
	}()

	if err := repl.Serve(ctx); err != nil {
		logger.Error("terminal session ended with error", "error", err)
	}

	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

func registerREPL(application *app.App, logger *logger.Logger, prompt string) model.Server {
	passwords := handler.NewTerminalPasswordReader(os.Stdin, os.Stdout)
	h := handler.New(application, passwords, logger)
	r := router.New(h, application, logger)

	return server.NewREPL(r, application, os.Stdin, os.Stdout, prompt, logger)
}
