// Package app wires the state store and the workflows into one application
// instance. Every App owns its own store, so instances never share state.
package app

import (
	"context"
	"fmt"

	"github.com/dtroode/eventhub-auth/internal/config"
	"github.com/dtroode/eventhub-auth/internal/logger"
	"github.com/dtroode/eventhub-auth/internal/model"
	"github.com/dtroode/eventhub-auth/internal/store"
	"github.com/dtroode/eventhub-auth/internal/service"
)

// App is the dispatch, read and bootstrap surface of the application.
type App struct {
	store   *store.Store
	auth    *service.Auth
	profile *service.Profile
	logger  *logger.Logger
}

// New creates an application with an empty mock database. Workflows suspend
// in delayer for the durations configured in delays.
func New(delays config.Delays, delayer model.Delayer, logger *logger.Logger) *App {
	s := store.New(logger)

	profile := service.NewProfile(s, delayer, delays.ProfileUpdate, logger)
	auth := service.NewAuth(s, profile, delayer, service.AuthDelays{
		Register: delays.Register,
		Login:    delays.Login,
	}, logger)

	return &App{
		store:   s,
		auth:    auth,
		profile: profile,
		logger:  logger,
	}
}

// Register runs the registration workflow and returns once it has settled.
func (a *App) Register(ctx context.Context, username, email, password string) {
	a.auth.Register(ctx, username, email, password)
}

// Login runs the login workflow and returns once both slices have settled.
func (a *App) Login(ctx context.Context, email, password string) {
	a.auth.Login(ctx, email, password)
}

func (a *App) Logout() {
	a.auth.Logout()
}

// UpdateProfile runs the profile update workflow.
func (a *App) UpdateProfile(ctx context.Context, patch model.ProfilePatch) {
	a.profile.Update(ctx, patch)
}

func (a *App) UpdateProfileLocally(patch model.ProfilePatch) {
	a.profile.UpdateLocally(patch)
}

func (a *App) StartEditing() {
	a.profile.StartEditing()
}

func (a *App) CancelEditing() {
	a.profile.CancelEditing()
}

func (a *App) ClearAuthError() {
	a.auth.ClearError()
}

func (a *App) ClearProfileError() {
	a.profile.ClearError()
}

// State returns a snapshot of the whole application state.
func (a *App) State() model.AppState {
	return a.store.State()
}

// Subscribe streams snapshots after every commit until cancel is called.
func (a *App) Subscribe() (<-chan model.AppState, func()) {
	return a.store.Subscribe()
}

// SeedUsers adds records to the mock database. It stops at the first record
// that has no id or collides with a known id or email.
func (a *App) SeedUsers(records ...model.CredentialRecord) error {
	for i, rec := range records {
		if err := a.store.Commit(store.AddKnownUser(rec)); err != nil {
			return fmt.Errorf("failed to seed user %d (%s): %w", i, rec.Email, err)
		}
	}

	a.logger.Info("App: users seeded", "count", len(records))

	return nil
}

// Seed loads every user of src into the mock database.
func (a *App) Seed(ctx context.Context, src model.UserSource) error {
	records, err := src.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	return a.SeedUsers(records...)
}
