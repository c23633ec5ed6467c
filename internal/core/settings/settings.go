// Package settings implements the settings modal state machine: a draft of
// the user's notification and privacy choices that is committed only after
// the privacy flag has been saved.
package settings

import (
	"errors"

	"github.com/colonyops/maple/internal/core/profile"
)

// ErrNotificationsDisabled is returned when a frequency is chosen while
// notifications are off and the menu is hidden.
var ErrNotificationsDisabled = errors.New("notifications are disabled")

// Phase is the lifecycle position of a modal instance.
type Phase int

const (
	PhaseClosed Phase = iota
	PhaseOpen
	PhaseSubmitting
)

func (p Phase) String() string {
	switch p {
	case PhaseOpen:
		return "open"
	case PhaseSubmitting:
		return "submitting"
	default:
		return "closed"
	}
}

// Draft is the uncommitted state edited by the modal.
type Draft struct {
	Notifications profile.Frequency
	Private       profile.Privacy
}

// Machine holds the committed privacy flag and, while open, a draft.
// The zero value is a closed machine with a public committed flag.
type Machine struct {
	phase     Phase
	committed profile.Privacy
	draft     Draft
	err       error
}

// New returns a closed machine seeded with the committed flag.
func New(committed profile.Privacy) *Machine {
	return &Machine{committed: committed}
}

// Open starts a fresh draft from the committed flag. Notifications always
// start unset. Opening an open machine is a no-op.
func (m *Machine) Open() {
	if m.phase != PhaseClosed {
		return
	}
	m.phase = PhaseOpen
	m.draft = Draft{Private: m.committed}
	m.err = nil
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase { return m.phase }

// Draft returns a copy of the draft.
func (m *Machine) Draft() Draft { return m.draft }

// Committed returns the committed privacy flag.
func (m *Machine) Committed() profile.Privacy { return m.committed }

// Err returns the error from the last failed submission, if any.
func (m *Machine) Err() error { return m.err }

// Editable reports whether the draft may be changed.
func (m *Machine) Editable() bool { return m.phase == PhaseOpen }

// FrequencyMenuVisible reports whether the frequency menu can be used.
func (m *Machine) FrequencyMenuVisible() bool {
	return m.draft.Notifications.IsSet()
}

// ToggleNotifications flips notifications between unset and the default
// frequency.
func (m *Machine) ToggleNotifications() {
	if !m.Editable() {
		return
	}
	if m.draft.Notifications.IsSet() {
		m.draft.Notifications = profile.FrequencyUnset
		return
	}
	m.draft.Notifications = profile.DefaultFrequency
}

// SelectFrequency sets the chosen frequency. It fails while notifications
// are disabled.
func (m *Machine) SelectFrequency(f profile.Frequency) error {
	if !m.Editable() {
		return nil
	}
	if !m.FrequencyMenuVisible() {
		return ErrNotificationsDisabled
	}
	if _, err := profile.ParseFrequency(string(f)); err != nil {
		return err
	}
	m.draft.Notifications = f
	return nil
}

// TogglePrivacy flips the draft privacy flag.
func (m *Machine) TogglePrivacy() {
	if !m.Editable() {
		return
	}
	m.draft.Private = m.draft.Private.Toggle()
}

// BeginSubmit moves the machine into the submitting phase and returns the
// value to persist. It returns false when a submission cannot start, which
// includes a submission already in flight.
func (m *Machine) BeginSubmit() (profile.Privacy, bool) {
	if m.phase != PhaseOpen {
		return profile.PrivacyPublic, false
	}
	m.phase = PhaseSubmitting
	m.err = nil
	return m.draft.Private, true
}

// CompleteSubmit records the outcome of a submission. On success the draft
// privacy becomes the committed flag and the machine closes. On failure it
// returns to open with the error kept for display.
func (m *Machine) CompleteSubmit(err error) {
	if m.phase != PhaseSubmitting {
		return
	}
	if err != nil {
		m.phase = PhaseOpen
		m.err = err
		return
	}
	m.committed = m.draft.Private
	m.close()
}

// Cancel discards the draft and closes. It is ignored while submitting.
func (m *Machine) Cancel() bool {
	if m.phase != PhaseOpen {
		return false
	}
	m.close()
	return true
}

func (m *Machine) close() {
	m.phase = PhaseClosed
	m.draft = Draft{}
	m.err = nil
}
