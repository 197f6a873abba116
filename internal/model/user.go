package model

// CredentialRecord is one entry of the mock user database. Records are
// appended by registration (or seeding) and never updated or removed.
type CredentialRecord struct {
	ID       string `yaml:"id"`
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

// User returns the public part of the record.
func (r CredentialRecord) User() User {
	return User{
		ID:       r.ID,
		Username: r.Username,
		Email:    r.Email,
	}
}

// User is the authenticated user as exposed to the rest of the application.
type User struct {
	ID       string
	Username string
	Email    string
}

// AuthState is the authentication slice of the application state.
//
// IsAuthenticated is true exactly when CurrentUser is set. An empty LastError
// means no error.
type AuthState struct {
	CurrentUser     *User
	KnownUsers      []CredentialRecord
	IsAuthenticated bool
	IsPending       bool
	LastError       string
}

// FindByEmail returns the known record registered under email. Emails are
// compared byte for byte.
func (s AuthState) FindByEmail(email string) (CredentialRecord, bool) {
	for _, u := range s.KnownUsers {
		if u.Email == email {
			return u, true
		}
	}
	return CredentialRecord{}, false
}

// FindByCredentials returns the record whose email and password both match.
func (s AuthState) FindByCredentials(email, password string) (CredentialRecord, bool) {
	for _, u := range s.KnownUsers {
		if u.Email == email && u.Password == password {
			return u, true
		}
	}
	return CredentialRecord{}, false
}
