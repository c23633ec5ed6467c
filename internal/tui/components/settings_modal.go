package components

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/colonyops/maple/internal/core/profile"
	"github.com/colonyops/maple/internal/core/settings"
	"github.com/colonyops/maple/internal/core/styles"
	"github.com/colonyops/maple/internal/tui/components/form"
)

const (
	settingsPromptWidth = 46
	settingsDefaultSave = 10 * time.Second
)

// Labels rendered by the settings modal.
const (
	SettingsTitle          = "Settings"
	NotificationsHeading   = "Notifications"
	NotificationsPrompt    = "Would you like to receive updates about bills/organizations you follow through email?"
	FrequencyPrompt        = "How often would you like to receive emails?"
	ProfileSettingsHeading = "Profile Settings"
	PrivacyPrompt          = "Don't make my profile public. (Your name will still be associated with your testimony.)"
	LabelEnable            = "Enable"
	LabelEnabled           = "Enabled"
	LabelContinue          = "Continue"
	LabelCancel            = "Cancel"
	LabelSaving            = "Saving..."
)

// SettingsClosedMsg is sent when the modal closes through Cancel or after
// a successful Continue. Private is the committed flag after closing.
type SettingsClosedMsg struct {
	Saved         bool
	Private       profile.Privacy
	Notifications profile.Frequency
}

// SettingsDismissedMsg is sent when the modal is dismissed with escape.
type SettingsDismissedMsg struct{}

// privacySavedMsg carries the result of a privacy update.
type privacySavedMsg struct {
	err error
}

type settingsControl int

const (
	controlNotifications settingsControl = iota
	controlFrequency
	controlPrivacy
	controlContinue
	controlCancel
	controlCount
)

// SettingsModalOpts configures a SettingsModal.
type SettingsModalOpts struct {
	// Profile is the profile being edited. Its name is shown in the title.
	Profile profile.Profile
	// Committed is the privacy flag currently held by the parent. It seeds
	// the draft and may be newer than Profile.Private.
	Committed profile.Privacy
	Updater   profile.PrivacyUpdater
	// Context is the parent of each update's context. Defaults to Background.
	Context     context.Context
	SaveTimeout time.Duration
	Logger      zerolog.Logger
}

// SettingsModal lets the user edit notification and privacy settings.
// Changes are drafted locally; the privacy flag is committed only after
// the updater succeeds.
type SettingsModal struct {
	machine *settings.Machine
	menu    *form.Dropdown
	focus   settingsControl
	profile profile.Profile

	updater profile.PrivacyUpdater
	ctx     context.Context
	timeout time.Duration
	log     zerolog.Logger
}

// NewSettingsModal creates an open settings modal.
func NewSettingsModal(opts SettingsModalOpts) *SettingsModal {
	options := make([]string, 0, len(profile.Frequencies()))
	for _, f := range profile.Frequencies() {
		options = append(options, string(f))
	}

	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	timeout := opts.SaveTimeout
	if timeout <= 0 {
		timeout = settingsDefaultSave
	}

	machine := settings.New(opts.Committed)
	machine.Open()

	return &SettingsModal{
		machine: machine,
		menu:    form.NewDropdown(options),
		focus:   controlNotifications,
		profile: opts.Profile,
		updater: opts.Updater,
		ctx:     ctx,
		timeout: timeout,
		log:     opts.Logger,
	}
}

// Phase returns the lifecycle phase.
func (m *SettingsModal) Phase() settings.Phase { return m.machine.Phase() }

// Draft returns the uncommitted settings.
func (m *SettingsModal) Draft() settings.Draft { return m.machine.Draft() }

// Committed returns the committed privacy flag.
func (m *SettingsModal) Committed() profile.Privacy { return m.machine.Committed() }

// Err returns the last save error.
func (m *SettingsModal) Err() error { return m.machine.Err() }

// MenuOpen reports whether the frequency menu is shown.
func (m *SettingsModal) MenuOpen() bool { return m.menu.IsOpen() }

// Update handles input and save results.
func (m *SettingsModal) Update(msg tea.Msg) (*SettingsModal, tea.Cmd) {
	switch msg := msg.(type) {
	case privacySavedMsg:
		return m.handleSaved(msg)
	case tea.KeyPressMsg:
		if m.menu.IsOpen() {
			return m.updateMenu(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *SettingsModal) handleKey(msg tea.KeyPressMsg) (*SettingsModal, tea.Cmd) {
	switch msg.String() {
	case "tab", "down", "j":
		m.moveFocus(1)
	case "shift+tab", "up", "k":
		m.moveFocus(-1)
	case "enter", "space", " ":
		return m.activate()
	case "esc":
		if m.machine.Cancel() {
			return m, func() tea.Msg { return SettingsDismissedMsg{} }
		}
	}
	return m, nil
}

func (m *SettingsModal) updateMenu(msg tea.KeyPressMsg) (*SettingsModal, tea.Cmd) {
	choice, chosen, cmd := m.menu.Update(msg)
	if !chosen {
		return m, cmd
	}

	f, err := profile.ParseFrequency(choice)
	if err != nil {
		m.log.Warn().Err(err).Msg("ignoring unknown frequency")
		return m, cmd
	}
	if err := m.machine.SelectFrequency(f); err != nil {
		m.log.Warn().Err(err).Msg("frequency selection rejected")
	}
	return m, cmd
}

func (m *SettingsModal) activate() (*SettingsModal, tea.Cmd) {
	switch m.focus {
	case controlNotifications:
		m.machine.ToggleNotifications()
	case controlFrequency:
		if m.machine.Editable() && m.machine.FrequencyMenuVisible() {
			m.menu.Open(string(m.machine.Draft().Notifications))
		}
	case controlPrivacy:
		m.machine.TogglePrivacy()
	case controlContinue:
		return m, m.submit()
	case controlCancel:
		if m.machine.Cancel() {
			committed := m.machine.Committed()
			return m, func() tea.Msg { return SettingsClosedMsg{Saved: false, Private: committed} }
		}
	}
	return m, nil
}

// submit starts a privacy update unless one is already in flight.
func (m *SettingsModal) submit() tea.Cmd {
	value, ok := m.machine.BeginSubmit()
	if !ok {
		return nil
	}

	if m.updater == nil {
		return func() tea.Msg {
			return privacySavedMsg{err: fmt.Errorf("no profile actions configured")}
		}
	}

	var (
		updater = m.updater
		parent  = m.ctx
		timeout = m.timeout
	)
	m.log.Debug().Ctx(parent).Bool("private", value.IsPrivate()).Msg("saving settings")

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()
		return privacySavedMsg{err: updater.UpdateIsPrivate(ctx, value)}
	}
}

func (m *SettingsModal) handleSaved(msg privacySavedMsg) (*SettingsModal, tea.Cmd) {
	notifications := m.machine.Draft().Notifications

	m.machine.CompleteSubmit(msg.err)
	if msg.err != nil {
		m.log.Error().Ctx(m.ctx).Err(msg.err).Msg("failed to save settings")
		return m, nil
	}

	committed := m.machine.Committed()
	return m, func() tea.Msg {
		return SettingsClosedMsg{Saved: true, Private: committed, Notifications: notifications}
	}
}

func (m *SettingsModal) moveFocus(delta int) {
	next := m.focus
	for range controlCount {
		next = settingsControl((int(next) + delta + int(controlCount)) % int(controlCount))
		if m.focusable(next) {
			m.focus = next
			return
		}
	}
}

func (m *SettingsModal) focusable(c settingsControl) bool {
	if c == controlFrequency {
		return m.machine.FrequencyMenuVisible()
	}
	return true
}

// View renders the modal body.
func (m *SettingsModal) View() string {
	draft := m.machine.Draft()
	submitting := m.machine.Phase() == settings.PhaseSubmitting

	notifyLabel := LabelEnable
	notifyStyle := styles.ButtonOutlineStyle
	if draft.Notifications.IsSet() {
		notifyLabel = LabelEnabled
		notifyStyle = styles.ButtonFilledStyle
	}
	notifyRow := m.row(NotificationsPrompt,
		m.button(controlNotifications, notifyStyle, styles.IconMail+" "+notifyLabel))

	// The frequency row keeps its height while hidden so the layout does
	// not jump when notifications are toggled.
	freqRow := m.row(FrequencyPrompt, m.button(controlFrequency, styles.ButtonOutlineStyle, string(draft.Notifications)+" ▾"))
	if !m.machine.FrequencyMenuVisible() {
		freqRow = strings.Repeat("\n", lipgloss.Height(freqRow)-1)
	}

	privacyLabel := LabelEnable
	privacyStyle := styles.ButtonOutlineStyle
	if draft.Private.IsPrivate() {
		privacyLabel = LabelEnabled
		privacyStyle = styles.ButtonFilledStyle
	}
	privacyRow := m.row(PrivacyPrompt, m.button(controlPrivacy, privacyStyle, privacyLabel))

	continueLabel, continueStyle := LabelContinue, styles.ButtonPrimaryStyle
	cancelStyle := styles.ButtonOutlineStyle
	if submitting {
		continueLabel, continueStyle = LabelSaving, styles.ButtonDisabledStyle
		cancelStyle = styles.ButtonDisabledStyle
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		m.button(controlContinue, continueStyle, continueLabel),
		"  ",
		m.button(controlCancel, cancelStyle, LabelCancel),
	)
	buttonRow := lipgloss.PlaceHorizontal(lipgloss.Width(notifyRow), lipgloss.Right, buttons)

	title := styles.ModalTitleStyle.Render(SettingsTitle)
	if m.profile.DisplayName != "" {
		title += styles.TextMutedStyle.Render("  " + m.profile.DisplayName)
	}

	parts := []string{
		title,
		"",
		m.section(NotificationsHeading),
		notifyRow,
		freqRow,
	}
	if m.menu.IsOpen() {
		parts = append(parts, lipgloss.PlaceHorizontal(lipgloss.Width(notifyRow), lipgloss.Right, m.menu.View()))
	}
	parts = append(parts,
		"",
		m.section(ProfileSettingsHeading),
		privacyRow,
		"",
		buttonRow,
	)

	if err := m.machine.Err(); err != nil {
		parts = append(parts, styles.TextErrorStyle.Render("Could not save settings: "+err.Error()))
	}

	help := "tab/↑↓ move  enter toggle  esc close"
	if m.menu.IsOpen() {
		help = "↑↓ choose  enter select  esc close menu"
	}
	parts = append(parts, styles.ModalHelpStyle.Render(help))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *SettingsModal) section(title string) string {
	divider := styles.DividerStyle.Render(strings.Repeat("─", settingsPromptWidth+16))
	return lipgloss.JoinVertical(lipgloss.Left, styles.SectionStyle.Render(" "+title), divider)
}

func (m *SettingsModal) row(prompt, control string) string {
	text := styles.TextForegroundStyle.Width(settingsPromptWidth).Render(prompt)
	return lipgloss.JoinHorizontal(lipgloss.Top, text, "  ", control)
}

func (m *SettingsModal) button(c settingsControl, style lipgloss.Style, label string) string {
	marker := "  "
	if m.focus == c {
		marker = styles.FocusMarkerStyle.Render("› ")
	}
	return marker + style.Render(label)
}

// Overlay renders the modal centered over the background.
func (m *SettingsModal) Overlay(background string, width, height int) string {
	modal := styles.ModalStyle.Render(m.View())

	bgLayer := lipgloss.NewLayer(background)
	modalLayer := lipgloss.NewLayer(modal)

	modalW := lipgloss.Width(modal)
	modalH := lipgloss.Height(modal)
	centerX := max((width-modalW)/2, 0)
	centerY := max((height-modalH)/2, 0)
	modalLayer.X(centerX).Y(centerY).Z(1)

	compositor := lipgloss.NewCompositor(bgLayer, modalLayer)
	return compositor.Render()
}
