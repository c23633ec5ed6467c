package maple

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"

	"github.com/colonyops/maple/internal/core/eventbus"
	"github.com/colonyops/maple/internal/core/logging"
	"github.com/colonyops/maple/internal/core/profile"
	"github.com/colonyops/maple/internal/core/validate"
)

// ErrNoProfile is returned when no profile id was given and one cannot be
// inferred.
var ErrNoProfile = errors.New("no profile selected")

// CreateOptions configures a new profile.
type CreateOptions struct {
	Name    string
	Private bool
}

// Validate checks the create options.
func (o CreateOptions) Validate() error {
	return criterio.ValidateStruct(
		validate.DisplayNameField("name", o.Name),
	)
}

// ProfileService manages profiles.
type ProfileService struct {
	store profile.Store
	bus   *eventbus.EventBus
	log   zerolog.Logger

	newID func() string
	now   func() time.Time
}

// NewProfileService creates a ProfileService. bus may be nil.
func NewProfileService(store profile.Store, bus *eventbus.EventBus, log zerolog.Logger) *ProfileService {
	return &ProfileService{
		store: store,
		bus:   bus,
		log:   log,
		newID: uuid.NewString,
		now:   time.Now,
	}
}

// Create stores a new profile with a generated id.
func (s *ProfileService) Create(ctx context.Context, opts CreateOptions) (profile.Profile, error) {
	if err := opts.Validate(); err != nil {
		return profile.Profile{}, err
	}

	p := s.newProfile(opts, s.now().UTC())
	if err := s.store.Create(ctx, p); err != nil {
		return profile.Profile{}, fmt.Errorf("create profile: %w", err)
	}

	s.log.Info().Str("profile_id", p.ID).Msg("profile created")
	return p, nil
}

// CreateMany validates every entry before storing any of them, then stores
// all profiles atomically. Creation order is preserved by List.
func (s *ProfileService) CreateMany(ctx context.Context, opts []CreateOptions) ([]profile.Profile, error) {
	for i, o := range opts {
		if err := o.Validate(); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
	}

	now := s.now().UTC()
	ps := make([]profile.Profile, 0, len(opts))
	for i, o := range opts {
		ps = append(ps, s.newProfile(o, now.Add(time.Duration(i))))
	}

	if err := s.store.CreateMany(ctx, ps); err != nil {
		return nil, fmt.Errorf("create profiles: %w", err)
	}

	s.log.Info().Int("count", len(ps)).Msg("profiles created")
	return ps, nil
}

func (s *ProfileService) newProfile(opts CreateOptions, at time.Time) profile.Profile {
	p := profile.Profile{
		ID:          s.newID(),
		DisplayName: strings.TrimSpace(opts.Name),
		Private:     profile.PrivacyPublic,
		CreatedAt:   at,
		UpdatedAt:   at,
	}
	if opts.Private {
		p.Private = profile.PrivacyPrivate
	}
	return p
}

// Get returns a profile by id.
func (s *ProfileService) Get(ctx context.Context, id string) (profile.Profile, error) {
	return s.store.Get(ctx, id)
}

// List returns all profiles, oldest first.
func (s *ProfileService) List(ctx context.Context) ([]profile.Profile, error) {
	return s.store.List(ctx)
}

// Resolve picks the profile id to operate on. An explicit id wins, then the
// fallback (usually from config). With neither, the only stored profile is
// used.
func (s *ProfileService) Resolve(ctx context.Context, id, fallback string) (string, error) {
	for _, candidate := range []string{id, fallback} {
		if candidate == "" {
			continue
		}
		if _, err := s.store.Get(ctx, candidate); err != nil {
			return "", fmt.Errorf("profile %q: %w", candidate, err)
		}
		return candidate, nil
	}

	all, err := s.store.List(ctx)
	if err != nil {
		return "", fmt.Errorf("list profiles: %w", err)
	}
	if len(all) == 1 {
		return all[0].ID, nil
	}
	return "", ErrNoProfile
}

// Actions returns the capability bound to one profile.
func (s *ProfileService) Actions(id string) *profile.Actions {
	var publisher profile.PrivacyPublisher
	if s.bus != nil {
		publisher = s.bus.ProfilePublisher()
	}
	return profile.NewActions(s.store, id, publisher, s.log)
}

// SetPrivacy updates a profile's privacy flag through the same capability
// the settings modal uses.
func (s *ProfileService) SetPrivacy(ctx context.Context, id string, v profile.Privacy) error {
	ctx = logging.WithProfileID(ctx, id)
	return s.Actions(id).UpdateIsPrivate(ctx, v)
}
