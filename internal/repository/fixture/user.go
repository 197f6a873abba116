// Package fixture reads known users from YAML fixture files.
package fixture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dtroode/eventhub-auth/internal/model"
)

var _ model.UserSource = (*UserRepository)(nil)

// ErrEmptyPath is returned when the repository has no file to read.
var ErrEmptyPath = errors.New("fixture path is empty")

type usersFile struct {
	Users []model.CredentialRecord `yaml:"users"`
}

type UserRepository struct {
	path string
}

func NewUserRepository(path string) *UserRepository {
	return &UserRepository{
		path: path,
	}
}

// ListUsers reads every user of the fixture file.
func (r *UserRepository) ListUsers(ctx context.Context) ([]model.CredentialRecord, error) {
	if r.path == "" {
		return nil, ErrEmptyPath
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixture: %w", err)
	}
	defer f.Close()

	users, err := DecodeUsers(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture %s: %w", r.path, err)
	}

	return users, nil
}

// DecodeUsers parses a fixture document. Unknown keys are rejected so that
// typos do not silently drop fields.
func DecodeUsers(r io.Reader) ([]model.CredentialRecord, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc usersFile
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}

	return doc.Users, nil
}
