// Package profile defines the user profile entity and the narrow
// capabilities other components use to change it.
package profile

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a profile does not exist.
	ErrNotFound = errors.New("profile not found")
	// ErrExists is returned when a profile id is already taken.
	ErrExists = errors.New("profile already exists")
)

// Profile is the stored record describing a user.
type Profile struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Private     Privacy   `json:"private"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Visibility returns a human readable label for the privacy flag.
func (p Profile) Visibility() string {
	if p.Private.IsPrivate() {
		return "Private"
	}
	return "Public"
}

// Store persists profiles.
type Store interface {
	// Get returns the profile with the given id or an error wrapping ErrNotFound.
	Get(ctx context.Context, id string) (Profile, error)
	// List returns all profiles ordered by creation time.
	List(ctx context.Context) ([]Profile, error)
	// Create inserts a new profile.
	Create(ctx context.Context, p Profile) error
	// CreateMany inserts all profiles or none of them.
	CreateMany(ctx context.Context, ps []Profile) error
	// UpdatePrivacy sets the privacy flag for a profile.
	UpdatePrivacy(ctx context.Context, id string, v Privacy) error
}

// PrivacyUpdater is the single capability the settings modal needs to
// persist the privacy flag.
type PrivacyUpdater interface {
	UpdateIsPrivate(ctx context.Context, v Privacy) error
}

// PrivacyUpdaterFunc adapts a function to PrivacyUpdater.
type PrivacyUpdaterFunc func(ctx context.Context, v Privacy) error

// UpdateIsPrivate calls f.
func (f PrivacyUpdaterFunc) UpdateIsPrivate(ctx context.Context, v Privacy) error {
	return f(ctx, v)
}
