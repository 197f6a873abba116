// Package selector reads derived values out of state snapshots. Selectors
// are pure and never reach back into the store.
package selector

import (
	"github.com/dtroode/eventhub-auth/internal/model"
)

// CurrentUser returns a copy of the authenticated user, or nil.
func CurrentUser(st model.AppState) *model.User {
	if st.Auth.CurrentUser == nil {
		return nil
	}
	u := *st.Auth.CurrentUser
	return &u
}

func IsAuthenticated(st model.AppState) bool {
	return st.Auth.IsAuthenticated
}

func AuthPending(st model.AppState) bool {
	return st.Auth.IsPending
}

func AuthError(st model.AppState) string {
	return st.Auth.LastError
}

// Username returns the authenticated username, or "" when logged out.
func Username(st model.AppState) string {
	if st.Auth.CurrentUser == nil {
		return ""
	}
	return st.Auth.CurrentUser.Username
}

// Profile returns a copy of the loaded profile, or nil.
func Profile(st model.AppState) *model.Profile {
	if st.Profile.Profile == nil {
		return nil
	}
	p := *st.Profile.Profile
	return &p
}

func ProfilePending(st model.AppState) bool {
	return st.Profile.IsPending
}

func ProfileError(st model.AppState) string {
	return st.Profile.LastError
}

func IsEditing(st model.AppState) bool {
	return st.Profile.IsEditing
}

// ProfileUsername returns the profile username, or "" without a profile.
func ProfileUsername(st model.AppState) string {
	if st.Profile.Profile == nil {
		return ""
	}
	return st.Profile.Profile.Username
}

// ProfileEmail returns the profile email, or "" without a profile.
func ProfileEmail(st model.AppState) string {
	if st.Profile.Profile == nil {
		return ""
	}
	return st.Profile.Profile.Email
}

// AnyPending reports whether a workflow is running on either slice.
func AnyPending(st model.AppState) bool {
	return st.Auth.IsPending || st.Profile.IsPending
}
