package profile

import "fmt"

// Privacy is the stored privacy flag. Only PrivacyPublic and PrivacyPrivate
// are valid.
type Privacy string

const (
	PrivacyPublic  Privacy = ""
	PrivacyPrivate Privacy = "yes"
)

// ParsePrivacy validates a raw flag value.
func ParsePrivacy(s string) (Privacy, error) {
	switch Privacy(s) {
	case PrivacyPublic, PrivacyPrivate:
		return Privacy(s), nil
	default:
		return PrivacyPublic, fmt.Errorf("invalid privacy value %q: must be %q or empty", s, PrivacyPrivate)
	}
}

// ParsePrivacyWord maps the CLI words "private" and "public" to a flag.
func ParsePrivacyWord(s string) (Privacy, error) {
	switch s {
	case "private":
		return PrivacyPrivate, nil
	case "public":
		return PrivacyPublic, nil
	default:
		return PrivacyPublic, fmt.Errorf("invalid visibility %q: must be private or public", s)
	}
}

// IsPrivate reports whether the flag marks the profile private.
func (p Privacy) IsPrivate() bool { return p == PrivacyPrivate }

// Toggle returns the opposite flag.
func (p Privacy) Toggle() Privacy {
	if p == PrivacyPrivate {
		return PrivacyPublic
	}
	return PrivacyPrivate
}

// Frequency is how often notification emails are sent. The zero value
// means notifications are off.
type Frequency string

const (
	FrequencyUnset   Frequency = ""
	FrequencyDaily   Frequency = "Daily"
	FrequencyWeekly  Frequency = "Weekly"
	FrequencyMonthly Frequency = "Monthly"
)

// DefaultFrequency is used when notifications are first enabled.
const DefaultFrequency = FrequencyMonthly

// Frequencies returns the selectable frequencies in menu order.
func Frequencies() []Frequency {
	return []Frequency{FrequencyDaily, FrequencyWeekly, FrequencyMonthly}
}

// ParseFrequency validates a selectable frequency.
func ParseFrequency(s string) (Frequency, error) {
	for _, f := range Frequencies() {
		if string(f) == s {
			return f, nil
		}
	}
	return FrequencyUnset, fmt.Errorf("invalid frequency %q", s)
}

// IsSet reports whether notifications are enabled.
func (f Frequency) IsSet() bool { return f != FrequencyUnset }
