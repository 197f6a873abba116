package model

// Profile is the editable projection of the authenticated user.
type Profile struct {
	ID       string
	Username string
	Email    string
}

// ProfileFromUser copies the user fields into a profile.
func ProfileFromUser(u User) Profile {
	return Profile{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
}

// ProfilePatch carries the fields a profile update provides. A nil field is
// not provided and keeps its current value.
type ProfilePatch struct {
	Username *string
	Email    *string
}

// Empty reports whether the patch provides no field at all.
func (p ProfilePatch) Empty() bool {
	return p.Username == nil && p.Email == nil
}

// Apply returns base overridden by the provided fields.
func (p ProfilePatch) Apply(base Profile) Profile {
	if p.Username != nil {
		base.Username = *p.Username
	}
	if p.Email != nil {
		base.Email = *p.Email
	}
	return base
}

// ProfileState is the profile slice of the application state.
type ProfileState struct {
	Profile   *Profile
	IsPending bool
	LastError string
	IsEditing bool
}
