package store

import (
	"github.com/dtroode/eventhub-auth/internal/model"
)

// SyncProfileFromAuth copies the current user into the profile slice and
// clears the profile error. Without a current user it changes nothing.
func SyncProfileFromAuth() Mutation {
	return Mutation{
		Name: "profile/syncFromAuth",
		Apply: func(st *model.AppState) error {
			if st.Auth.CurrentUser == nil {
				return nil
			}

			p := model.ProfileFromUser(*st.Auth.CurrentUser)
			st.Profile.Profile = &p
			st.Profile.LastError = ""
			return nil
		},
	}
}

// ProfileUpdateStart enters the pending state of a profile update.
func ProfileUpdateStart() Mutation {
	return Mutation{
		Name: "profile/updateStart",
		Apply: func(st *model.AppState) error {
			st.Profile.IsPending = true
			st.Profile.LastError = ""
			return nil
		},
	}
}

// ProfileUpdateFailed records err as the profile error. Profile and edit
// mode are kept.
func ProfileUpdateFailed(err error) Mutation {
	return Mutation{
		Name: "profile/updateFailure",
		Apply: func(st *model.AppState) error {
			failProfile(&st.Profile, err)
			return err
		},
	}
}

// UpdateProfile merges patch into the loaded profile after check accepts it,
// and leaves edit mode. The read of the current profile and the write happen
// in the same commit.
func UpdateProfile(patch model.ProfilePatch, check func(model.ProfilePatch) error) Mutation {
	return Mutation{
		Name: "profile/update",
		Apply: func(st *model.AppState) error {
			if st.Profile.Profile == nil {
				failProfile(&st.Profile, model.ErrNoProfile)
				return model.ErrNoProfile
			}

			merged := patch.Apply(*st.Profile.Profile)

			if check != nil {
				if err := check(patch); err != nil {
					failProfile(&st.Profile, err)
					return err
				}
			}

			st.Profile.Profile = &merged
			st.Profile.IsPending = false
			st.Profile.LastError = ""
			st.Profile.IsEditing = false
			return nil
		},
	}
}

// UpdateProfileLocally merges patch into the loaded profile without any
// validation. It is a no-op when no profile is loaded.
func UpdateProfileLocally(patch model.ProfilePatch) Mutation {
	return Mutation{
		Name: "profile/updateLocally",
		Apply: func(st *model.AppState) error {
			if st.Profile.Profile == nil {
				return nil
			}

			merged := patch.Apply(*st.Profile.Profile)
			st.Profile.Profile = &merged
			return nil
		},
	}
}

// StartEditing enters edit mode.
func StartEditing() Mutation {
	return Mutation{
		Name: "profile/startEditing",
		Apply: func(st *model.AppState) error {
			st.Profile.IsEditing = true
			st.Profile.LastError = ""
			return nil
		},
	}
}

// CancelEditing leaves edit mode. The profile is not touched, so callers
// rebuild their drafts from it.
func CancelEditing() Mutation {
	return Mutation{
		Name: "profile/cancelEditing",
		Apply: func(st *model.AppState) error {
			st.Profile.IsEditing = false
			st.Profile.LastError = ""
			return nil
		},
	}
}

// ClearProfileError drops the profile error.
func ClearProfileError() Mutation {
	return Mutation{
		Name: "profile/clearError",
		Apply: func(st *model.AppState) error {
			st.Profile.LastError = ""
			return nil
		},
	}
}

func failProfile(profile *model.ProfileState, err error) {
	profile.IsPending = false
	profile.LastError = model.ErrorMessage(err)
}
