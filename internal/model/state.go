package model

// AppState composes the two independently owned slices.
type AppState struct {
	Auth    AuthState
	Profile ProfileState
}

// Clone returns a deep copy that shares no memory with s.
func (s AppState) Clone() AppState {
	out := s

	if s.Auth.CurrentUser != nil {
		u := *s.Auth.CurrentUser
		out.Auth.CurrentUser = &u
	}
	if s.Auth.KnownUsers != nil {
		out.Auth.KnownUsers = make([]CredentialRecord, len(s.Auth.KnownUsers))
		copy(out.Auth.KnownUsers, s.Auth.KnownUsers)
	}
	if s.Profile.Profile != nil {
		p := *s.Profile.Profile
		out.Profile.Profile = &p
	}

	return out
}
