// Package tui implements the edit profile page and hosts the settings modal.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/colonyops/maple/internal/core/eventbus"
	"github.com/colonyops/maple/internal/core/logging"
	"github.com/colonyops/maple/internal/core/profile"
	"github.com/colonyops/maple/internal/core/styles"
	"github.com/colonyops/maple/internal/tui/components"
)

// StatusSaved is shown after settings are saved.
const StatusSaved = "Settings saved"

type uiState int

const (
	stateLoading uiState = iota
	stateReady
	stateSettings
	stateLoadFailed
)

// Options configures the edit profile page.
type Options struct {
	Actions     ProfileActions     // Profile capability bound to the edited profile
	Bus         *eventbus.EventBus // Event bus for settings lifecycle events (optional)
	SaveTimeout time.Duration      // Upper bound on a single settings save
	Logger      zerolog.Logger
}

// Model is the edit profile page.
type Model struct {
	actions ProfileActions
	bus     *eventbus.EventBus
	ctx     context.Context
	timeout time.Duration
	log     zerolog.Logger
	keys    keyMap

	state   uiState
	profile profile.Profile
	// committed is the privacy flag the page treats as current. It changes
	// only after the settings modal reports a successful save.
	committed profile.Privacy
	loadErr   error

	modal           *components.SettingsModal
	spinner         spinner.Model
	toastController *ToastController
	toastView       *ToastView

	width, height int
	quitting      bool
}

// New creates the edit profile page.
func New(opts Options) Model {
	ctx := context.Background()
	if opts.Actions != nil {
		ctx = logging.WithProfileID(ctx, opts.Actions.ProfileID())
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.TextPrimaryStyle

	toasts := NewToastController()

	return Model{
		actions:         opts.Actions,
		bus:             opts.Bus,
		ctx:             ctx,
		timeout:         opts.SaveTimeout,
		log:             opts.Logger,
		keys:            defaultKeyMap(),
		state:           stateLoading,
		spinner:         s,
		toastController: toasts,
		toastView:       NewToastView(toasts),
	}
}

// Init starts loading the profile.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadProfile(), m.spinner.Tick)
}

// Committed returns the committed privacy flag.
func (m Model) Committed() profile.Privacy { return m.committed }

// SettingsOpen reports whether the settings modal is shown.
func (m Model) SettingsOpen() bool { return m.state == stateSettings && m.modal != nil }

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case profileLoadedMsg:
		return m.handleProfileLoaded(msg)
	case spinner.TickMsg:
		if m.state != stateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case toastTickMsg:
		return m.handleToastTick(msg)
	case components.SettingsClosedMsg:
		return m.handleSettingsClosed(msg)
	case components.SettingsDismissedMsg:
		return m.closeSettings(false)
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	// Save results and other modal-internal messages.
	if m.modal != nil {
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.state == stateSettings && m.modal != nil {
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Settings):
		return m.openSettings()
	case key.Matches(msg, m.keys.Dismiss):
		m.toastController.Dismiss()
	}
	return m, nil
}

func (m Model) handleProfileLoaded(msg profileLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.Error().Ctx(m.ctx).Err(msg.err).Msg("failed to load profile")
		m.state = stateLoadFailed
		m.loadErr = msg.err
		return m, nil
	}

	m.profile = msg.profile
	m.committed = msg.profile.Private
	m.state = stateReady
	return m, nil
}

func (m Model) openSettings() (tea.Model, tea.Cmd) {
	if m.state != stateReady {
		return m, nil
	}

	m.modal = components.NewSettingsModal(components.SettingsModalOpts{
		Profile:     m.profile,
		Committed:   m.committed,
		Updater:     m.actions,
		Context:     m.ctx,
		SaveTimeout: m.timeout,
		Logger:      m.log,
	})
	m.state = stateSettings

	if m.bus != nil {
		m.bus.PublishSettingsOpened(eventbus.SettingsOpenedPayload{ProfileID: m.profile.ID})
	}
	m.log.Debug().Ctx(m.ctx).Msg("settings opened")
	return m, nil
}

func (m Model) handleSettingsClosed(msg components.SettingsClosedMsg) (tea.Model, tea.Cmd) {
	if msg.Saved {
		m.committed = msg.Private
		m.profile.Private = msg.Private
	}
	return m.closeSettings(msg.Saved)
}

func (m Model) closeSettings(saved bool) (tea.Model, tea.Cmd) {
	if m.state != stateSettings {
		return m, nil
	}

	m.modal = nil
	m.state = stateReady

	if m.bus != nil {
		m.bus.PublishSettingsClosed(eventbus.SettingsClosedPayload{ProfileID: m.profile.ID, Saved: saved})
	}
	m.log.Debug().Ctx(m.ctx).Bool("saved", saved).Msg("settings closed")

	if !saved {
		return m, nil
	}
	return m, m.pushToast(toastInfo, StatusSaved)
}

func (m Model) pushToast(level toastLevel, message string) tea.Cmd {
	m.toastController.Push(level, message)
	if m.toastController.Ticking() {
		return nil
	}
	m.toastController.SetTicking(true)
	return scheduleToastTick()
}

func (m Model) handleToastTick(_ toastTickMsg) (tea.Model, tea.Cmd) {
	m.toastController.Tick(toastTickInterval)
	if m.toastController.HasToasts() {
		return m, scheduleToastTick()
	}
	m.toastController.SetTicking(false)
	return m, nil
}

// View renders the page with any overlays.
func (m Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m Model) render() string {
	w, h := m.width, m.height
	if w == 0 {
		w = 80
	}
	if h == 0 {
		h = 24
	}

	content := lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, m.renderPage())
	if m.state == stateSettings && m.modal != nil {
		content = m.modal.Overlay(content, w, h)
	}
	return m.toastView.Overlay(content, w, h)
}

func (m Model) renderPage() string {
	header := styles.HeaderStyle.Render("Edit Profile")

	var body string
	switch m.state {
	case stateLoading:
		body = m.spinner.View() + " Loading profile..."
	case stateLoadFailed:
		body = styles.TextErrorStyle.Render(fmt.Sprintf("Could not load profile: %v", m.loadErr))
	default:
		body = lipgloss.JoinVertical(lipgloss.Left,
			field("Name", m.profile.DisplayName),
			field("Profile", m.profile.Visibility()),
			field("ID", m.profile.ID),
		)
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, body, "", m.renderHelp()),
	)
}

func field(label, value string) string {
	return styles.TextMutedStyle.Width(10).Render(label) + styles.TextForegroundStyle.Render(value)
}

func (m Model) renderHelp() string {
	parts := make([]string, 0, len(m.keys.help()))
	for _, b := range m.keys.help() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return styles.TextMutedStyle.Render(strings.Join(parts, "  "))
}
