package profile

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// PrivacyPublisher is notified after a privacy flag is persisted.
type PrivacyPublisher interface {
	PublishPrivacyUpdated(profileID string, v Privacy)
}

// Actions binds a store to a single profile and exposes the profile
// mutations the UI is allowed to perform.
type Actions struct {
	store     Store
	profileID string
	publisher PrivacyPublisher
	log       zerolog.Logger
}

var _ PrivacyUpdater = (*Actions)(nil)

// NewActions creates actions for the given profile. publisher may be nil.
func NewActions(store Store, profileID string, publisher PrivacyPublisher, log zerolog.Logger) *Actions {
	return &Actions{
		store:     store,
		profileID: profileID,
		publisher: publisher,
		log:       log,
	}
}

// ProfileID returns the id of the profile these actions operate on.
func (a *Actions) ProfileID() string { return a.profileID }

// Load returns the current snapshot of the bound profile.
func (a *Actions) Load(ctx context.Context) (Profile, error) {
	return a.store.Get(ctx, a.profileID)
}

// UpdateIsPrivate persists the privacy flag for the bound profile.
func (a *Actions) UpdateIsPrivate(ctx context.Context, v Privacy) error {
	if _, err := ParsePrivacy(string(v)); err != nil {
		return err
	}

	if err := a.store.UpdatePrivacy(ctx, a.profileID, v); err != nil {
		return fmt.Errorf("update privacy: %w", err)
	}

	a.log.Info().Ctx(ctx).Bool("private", v.IsPrivate()).Msg("privacy updated")

	if a.publisher != nil {
		a.publisher.PublishPrivacyUpdated(a.profileID, v)
	}
	return nil
}
