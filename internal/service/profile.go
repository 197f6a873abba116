package service

import (
	"context"
	"time"

	"github.com/dtroode/eventhub-auth/internal/logger"
	"github.com/dtroode/eventhub-auth/internal/model"
	"github.com/dtroode/eventhub-auth/internal/store"
	"github.com/dtroode/eventhub-auth/internal/validate"
)

var _ model.ProfileSyncer = (*Profile)(nil)

// Profile runs the workflows of the profile slice.
type Profile struct {
	store       StateStore
	delayer     model.Delayer
	updateDelay time.Duration
	logger      *logger.Logger
}

func NewProfile(stateStore StateStore, delayer model.Delayer, updateDelay time.Duration, logger *logger.Logger) *Profile {
	return &Profile{
		store:       stateStore,
		delayer:     delayer,
		updateDelay: updateDelay,
		logger:      logger,
	}
}

// SyncFromAuth copies the authenticated user into the profile. It does
// nothing when nobody is logged in.
func (p *Profile) SyncFromAuth() {
	_ = p.store.Commit(store.SyncProfileFromAuth())
	p.logger.Debug("Profile service: profile synced from auth")
}

// Update validates the provided fields and merges them into the profile.
// Success leaves edit mode; failure keeps both the profile and edit mode.
func (p *Profile) Update(ctx context.Context, patch model.ProfilePatch) {
	p.logger.Debug("Profile service: starting profile update",
		"username_provided", patch.Username != nil,
		"email_provided", patch.Email != nil)

	_ = p.store.Commit(store.ProfileUpdateStart())

	if err := wait(ctx, p.delayer, p.updateDelay); err != nil {
		p.fail(err)
		return
	}

	if err := p.store.Commit(store.UpdateProfile(patch, validate.ProfilePatch)); err != nil {
		p.logger.Info("Profile service: profile update rejected",
			"error", err.Error())
		return
	}

	p.logger.Info("Profile service: profile update completed successfully")
}

// UpdateLocally applies patch to the loaded profile at once, without
// validation or latency.
func (p *Profile) UpdateLocally(patch model.ProfilePatch) {
	_ = p.store.Commit(store.UpdateProfileLocally(patch))
}

// StartEditing enters edit mode.
func (p *Profile) StartEditing() {
	_ = p.store.Commit(store.StartEditing())
}

// CancelEditing leaves edit mode without touching the profile.
func (p *Profile) CancelEditing() {
	_ = p.store.Commit(store.CancelEditing())
}

// ClearError drops the profile error.
func (p *Profile) ClearError() {
	_ = p.store.Commit(store.ClearProfileError())
}

func (p *Profile) fail(err error) {
	_ = p.store.Commit(store.ProfileUpdateFailed(err))

	p.logger.Info("Profile service: profile update failed",
		"error", err.Error())
}
