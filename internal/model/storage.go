package model

import (
	"context"
)

// UserSource supplies credential records used to seed the mock database.
type UserSource interface {
	ListUsers(ctx context.Context) ([]CredentialRecord, error)
}
