package tui

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/maple/internal/core/profile"
)

var errNoActions = errors.New("no profile configured")

// profileLoadedMsg is sent when the profile is fetched.
type profileLoadedMsg struct {
	profile profile.Profile
	err     error
}

// loadProfile returns a tea.Cmd that fetches the page's profile.
func (m Model) loadProfile() tea.Cmd {
	if m.actions == nil {
		return func() tea.Msg { return profileLoadedMsg{err: errNoActions} }
	}
	actions := m.actions
	ctx := m.ctx
	return func() tea.Msg {
		p, err := actions.Load(ctx)
		return profileLoadedMsg{profile: p, err: err}
	}
}

var _ ProfileActions = (*profile.Actions)(nil)

// ProfileActions is what the edit profile page needs from the profile
// layer.
type ProfileActions interface {
	profile.PrivacyUpdater
	ProfileID() string
	Load(ctx context.Context) (profile.Profile, error)
}
