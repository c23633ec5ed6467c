package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/maple/internal/core/eventbus"
	"github.com/colonyops/maple/internal/core/eventbus/testbus"
	"github.com/colonyops/maple/internal/core/profile"
	"github.com/colonyops/maple/internal/tui/components"
	"github.com/colonyops/maple/pkg/tuitest"
)

type fakeActions struct {
	mu      sync.Mutex
	profile profile.Profile
	loadErr error
	saveErr error
	calls   []profile.Privacy
}

func (f *fakeActions) ProfileID() string { return f.profile.ID }

func (f *fakeActions) Load(_ context.Context) (profile.Profile, error) {
	return f.profile, f.loadErr
}

func (f *fakeActions) UpdateIsPrivate(_ context.Context, v profile.Privacy) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, v)
	if f.saveErr != nil {
		return f.saveErr
	}
	f.profile.Private = v
	return nil
}

func (f *fakeActions) Calls() []profile.Privacy {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]profile.Privacy(nil), f.calls...)
}

func newFakeActions() *fakeActions {
	return &fakeActions{profile: profile.Profile{ID: "p-1", DisplayName: "Ada Lovelace"}}
}

func newLoadedModel(t *testing.T, actions *fakeActions, bus *eventbus.EventBus) Model {
	t.Helper()

	m := New(Options{Actions: actions, Bus: bus, SaveTimeout: time.Second, Logger: zerolog.Nop()})
	cmd := m.loadProfile()
	require.NotNil(t, cmd)

	return update(t, m, cmd())
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model
}

// drive feeds msg and then every message produced by the resulting
// commands until no command remains. Tick commands are not followed.
func drive(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	for msg != nil {
		next, cmd := m.Update(msg)
		m = next.(Model)
		msg = nil
		if cmd == nil {
			break
		}
		out := cmd()
		if _, ok := out.(toastTickMsg); ok {
			break
		}
		msg = out
	}
	return m
}

func viewText(m Model) string {
	return tuitest.StripANSI(m.render())
}

func TestModel_LoadsProfile(t *testing.T) {
	m := newLoadedModel(t, newFakeActions(), nil)

	assert.Equal(t, stateReady, m.state)
	view := viewText(m)
	assert.Contains(t, view, "Ada Lovelace")
	assert.Contains(t, view, "Public")
}

func TestModel_NoActionsFailsLoad(t *testing.T) {
	m := New(Options{Logger: zerolog.Nop()})
	cmd := m.loadProfile()
	require.NotNil(t, cmd)

	m = update(t, m, cmd())
	assert.Equal(t, stateLoadFailed, m.state)
	assert.ErrorIs(t, m.loadErr, errNoActions)
	assert.Contains(t, viewText(m), "Could not load profile")
}

func TestModel_LoadFailure(t *testing.T) {
	actions := newFakeActions()
	actions.loadErr = profile.ErrNotFound

	m := newLoadedModel(t, actions, nil)

	assert.Equal(t, stateLoadFailed, m.state)
	assert.Contains(t, viewText(m), "Could not load profile")

	m = update(t, m, tuitest.KeyPress('s'))
	assert.False(t, m.SettingsOpen())
}

func TestModel_SaveCommitsPrivacy(t *testing.T) {
	actions := newFakeActions()
	bus := testbus.New(t)
	m := newLoadedModel(t, actions, bus.EventBus)

	m = update(t, m, tuitest.KeyPress('s'))
	require.True(t, m.SettingsOpen())
	bus.AssertPublished(t, eventbus.EventSettingsOpened)

	m = update(t, m, tuitest.KeyTab())
	m = update(t, m, tuitest.KeyEnter()) // privacy on
	assert.Equal(t, profile.PrivacyPublic, m.Committed(), "draft is not visible to the page")

	m = update(t, m, tuitest.KeyTab())
	m = drive(t, m, tuitest.KeyEnter()) // Continue

	assert.False(t, m.SettingsOpen())
	assert.Equal(t, profile.PrivacyPrivate, m.Committed())
	assert.Equal(t, []profile.Privacy{profile.PrivacyPrivate}, actions.Calls())

	view := viewText(m)
	assert.Contains(t, view, StatusSaved)
	assert.Contains(t, view, "Private")

	bus.AssertPublished(t, eventbus.EventSettingsClosed)
	for _, e := range bus.Events() {
		if p, ok := e.Payload.(eventbus.SettingsClosedPayload); ok {
			assert.True(t, p.Saved)
		}
	}
}

func TestModel_CancelKeepsCommitted(t *testing.T) {
	actions := newFakeActions()
	m := newLoadedModel(t, actions, nil)

	m = update(t, m, tuitest.KeyPress('s'))
	m = update(t, m, tuitest.KeyTab())
	m = update(t, m, tuitest.KeyEnter())
	m = update(t, m, tuitest.KeyTab())
	m = update(t, m, tuitest.KeyTab())
	m = drive(t, m, tuitest.KeyEnter()) // Cancel

	assert.False(t, m.SettingsOpen())
	assert.Equal(t, profile.PrivacyPublic, m.Committed())
	assert.Empty(t, actions.Calls())
	assert.NotContains(t, viewText(m), StatusSaved)
}

func TestModel_EscapeDismissesSettings(t *testing.T) {
	m := newLoadedModel(t, newFakeActions(), nil)

	m = update(t, m, tuitest.KeyPress('s'))
	require.True(t, m.SettingsOpen())

	m = drive(t, m, tuitest.KeyEscape())
	assert.False(t, m.SettingsOpen())
}

func TestModel_SaveFailureLeavesModalOpen(t *testing.T) {
	actions := newFakeActions()
	actions.saveErr = errors.New("backend unavailable")
	m := newLoadedModel(t, actions, nil)

	m = update(t, m, tuitest.KeyPress('s'))
	m = update(t, m, tuitest.KeyTab())
	m = update(t, m, tuitest.KeyEnter())
	m = update(t, m, tuitest.KeyTab())
	m = drive(t, m, tuitest.KeyEnter())

	assert.True(t, m.SettingsOpen())
	assert.Equal(t, profile.PrivacyPublic, m.Committed())
	assert.Contains(t, viewText(m), "backend unavailable")
}

func TestModel_QuitKeys(t *testing.T) {
	for _, msg := range []tea.Msg{
		tuitest.KeyPress('q'),
		tea.KeyPressMsg(tea.Key{Code: 'c', Mod: tea.ModCtrl}),
	} {
		m := newLoadedModel(t, newFakeActions(), nil)
		next, cmd := m.Update(msg)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
		assert.True(t, next.(Model).quitting)
	}
}

func TestModel_SettingsClosedIgnoredWhenNotOpen(t *testing.T) {
	m := newLoadedModel(t, newFakeActions(), nil)

	m = update(t, m, components.SettingsClosedMsg{Saved: true, Private: profile.PrivacyPrivate})
	assert.NotContains(t, viewText(m), StatusSaved)
}
