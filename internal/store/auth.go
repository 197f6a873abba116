package store

import (
	"github.com/dtroode/eventhub-auth/internal/model"
)

// AuthStart enters the pending state of a register or login workflow.
func AuthStart() Mutation {
	return Mutation{
		Name: "auth/start",
		Apply: func(st *model.AppState) error {
			st.Auth.IsPending = true
			st.Auth.LastError = ""
			return nil
		},
	}
}

// AuthSucceeded logs u in.
func AuthSucceeded(u model.User) Mutation {
	return Mutation{
		Name: "auth/success",
		Apply: func(st *model.AppState) error {
			loginUser(&st.Auth, u)
			return nil
		},
	}
}

// AuthFailed records err as the auth error. The current user is kept.
func AuthFailed(err error) Mutation {
	return Mutation{
		Name: "auth/failure",
		Apply: func(st *model.AppState) error {
			failAuth(&st.Auth, err)
			return err
		},
	}
}

// RegisterUser checks email uniqueness against the known users, appends rec
// and logs it in, all in one commit. On a duplicate email it commits the
// failure instead and returns model.ErrDuplicateEmail.
func RegisterUser(rec model.CredentialRecord) Mutation {
	return Mutation{
		Name: "auth/register",
		Apply: func(st *model.AppState) error {
			if _, ok := st.Auth.FindByEmail(rec.Email); ok {
				failAuth(&st.Auth, model.ErrDuplicateEmail)
				return model.ErrDuplicateEmail
			}

			st.Auth.KnownUsers = append(st.Auth.KnownUsers, rec)
			loginUser(&st.Auth, rec.User())
			return nil
		},
	}
}

// AddKnownUser appends rec to the mock user database without logging it in.
// It is the seeding entry point and refuses records that would break id or
// email uniqueness.
func AddKnownUser(rec model.CredentialRecord) Mutation {
	return Mutation{
		Name: "auth/addKnownUser",
		Apply: func(st *model.AppState) error {
			if rec.ID == "" {
				return model.ErrEmptyID
			}
			for _, u := range st.Auth.KnownUsers {
				if u.ID == rec.ID {
					return model.ErrDuplicateID
				}
			}
			if _, ok := st.Auth.FindByEmail(rec.Email); ok {
				return model.ErrDuplicateEmail
			}

			st.Auth.KnownUsers = append(st.Auth.KnownUsers, rec)
			return nil
		},
	}
}

// Logout ends the session. Known users and the profile slice are untouched.
func Logout() Mutation {
	return Mutation{
		Name: "auth/logout",
		Apply: func(st *model.AppState) error {
			st.Auth.CurrentUser = nil
			st.Auth.IsAuthenticated = false
			st.Auth.LastError = ""
			return nil
		},
	}
}

// ClearAuthError drops the auth error.
func ClearAuthError() Mutation {
	return Mutation{
		Name: "auth/clearError",
		Apply: func(st *model.AppState) error {
			st.Auth.LastError = ""
			return nil
		},
	}
}

func loginUser(auth *model.AuthState, u model.User) {
	auth.CurrentUser = &u
	auth.IsAuthenticated = true
	auth.IsPending = false
	auth.LastError = ""
}

func failAuth(auth *model.AuthState, err error) {
	auth.IsPending = false
	auth.LastError = model.ErrorMessage(err)
}
