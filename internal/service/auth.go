package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/eventhub-auth/internal/logger"
	"github.com/dtroode/eventhub-auth/internal/model"
	"github.com/dtroode/eventhub-auth/internal/store"
	"github.com/dtroode/eventhub-auth/internal/validate"
)

// AuthDelays holds the simulated latency of each auth workflow.
type AuthDelays struct {
	Register time.Duration
	Login    time.Duration
}

// Auth runs the register and login workflows against the auth slice. After
// a successful login it hands over to the ProfileSyncer; that is the only
// coupling between the two slices and it only goes from auth to profile.
type Auth struct {
	store   StateStore
	profile model.ProfileSyncer
	delayer model.Delayer
	delays  AuthDelays
	logger  *logger.Logger
	newID   func() string
}

func NewAuth(
	stateStore StateStore,
	profile model.ProfileSyncer,
	delayer model.Delayer,
	delays AuthDelays,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		store:   stateStore,
		profile: profile,
		delayer: delayer,
		delays:  delays,
		logger:  logger,
		newID:   uuid.NewString,
	}
}

// Register creates an account and logs it in. It returns once the auth
// slice holds the terminal outcome.
func (a *Auth) Register(ctx context.Context, username, email, password string) {
	a.logger.Debug("Auth service: starting registration",
		"username", username,
		"email", email)

	_ = a.store.Commit(store.AuthStart())

	if err := wait(ctx, a.delayer, a.delays.Register); err != nil {
		a.fail("registration", email, err)
		return
	}

	if err := checkRegistration(username, email, password); err != nil {
		a.fail("registration", email, err)
		return
	}

	rec := model.CredentialRecord{
		ID:       a.newID(),
		Username: username,
		Email:    email,
		Password: password,
	}

	if err := a.store.Commit(store.RegisterUser(rec)); err != nil {
		a.logger.Info("Auth service: registration rejected",
			"email", email,
			"error", err.Error())
		return
	}

	a.logger.Info("Auth service: registration completed successfully",
		"email", email,
		"user_id", rec.ID)
}

// Login authenticates against the known users and, on success, syncs the
// profile slice before returning.
func (a *Auth) Login(ctx context.Context, email, password string) {
	a.logger.Debug("Auth service: starting login",
		"email", email)

	_ = a.store.Commit(store.AuthStart())

	if err := wait(ctx, a.delayer, a.delays.Login); err != nil {
		a.fail("login", email, err)
		return
	}

	if email == "" || password == "" {
		a.fail("login", email, model.ErrMissingCredentials)
		return
	}

	rec, ok := a.store.State().Auth.FindByCredentials(email, password)
	if !ok {
		a.fail("login", email, model.ErrInvalidCredentials)
		return
	}

	_ = a.store.Commit(store.AuthSucceeded(rec.User()))
	a.profile.SyncFromAuth()

	a.logger.Info("Auth service: login completed successfully",
		"email", email,
		"user_id", rec.ID)
}

// Logout ends the current session.
func (a *Auth) Logout() {
	_ = a.store.Commit(store.Logout())
	a.logger.Info("Auth service: logged out")
}

// ClearError drops the auth error, typically when leaving a form.
func (a *Auth) ClearError() {
	_ = a.store.Commit(store.ClearAuthError())
}

func (a *Auth) fail(op, email string, err error) {
	_ = a.store.Commit(store.AuthFailed(err))

	a.logger.Info("Auth service: "+op+" failed",
		"email", email,
		"error", err.Error())
}

func checkRegistration(username, email, password string) error {
	if username == "" || email == "" || password == "" {
		return model.ErrMissingFields
	}

	if !validate.IsValidEmail(email) {
		return model.ErrInvalidEmail
	}

	if res := validate.IsValidPassword(password); !res.Valid {
		return model.NewWeakPasswordError(res.Errors)
	}

	return nil
}
