package doctor

import (
	"context"
	"errors"
	"fmt"

	"github.com/colonyops/maple/internal/core/profile"
)

// ProfilesCheck verifies there is a profile to edit.
type ProfilesCheck struct {
	store      profile.Store
	configured string
}

// NewProfilesCheck creates a new profiles check. configured is the
// profile_id from config and may be empty.
func NewProfilesCheck(store profile.Store, configured string) *ProfilesCheck {
	return &ProfilesCheck{store: store, configured: configured}
}

func (c *ProfilesCheck) Name() string {
	return "Profiles"
}

func (c *ProfilesCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	all, err := c.store.List(ctx)
	if err != nil {
		result.Items = append(result.Items, fail("profiles", err.Error()))
		return result
	}

	if len(all) == 0 {
		result.Items = append(result.Items, warn("profiles", "none found, run 'maple profile create'"))
	} else {
		result.Items = append(result.Items, pass("profiles", fmt.Sprintf("%d stored", len(all))))
	}

	if c.configured == "" {
		return result
	}

	p, err := c.store.Get(ctx, c.configured)
	switch {
	case errors.Is(err, profile.ErrNotFound):
		result.Items = append(result.Items, fail("profile_id", c.configured+" does not exist"))
	case err != nil:
		result.Items = append(result.Items, fail("profile_id", err.Error()))
	default:
		result.Items = append(result.Items, pass("profile_id", p.DisplayName))
	}

	return result
}
