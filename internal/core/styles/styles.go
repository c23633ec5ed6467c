// Package styles provides shared lipgloss v2 styles for CLI and TUI components.
package styles

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"
)

// IconMail marks the notification toggle.
var IconMail = "\ueb1c"

// Toast icons.
var (
	IconNotifyInfo  = "\uf05a"
	IconNotifyError = "\uf06a"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

var (
	ColorPrimary    color.Color
	ColorForeground color.Color
	ColorMuted      color.Color
	ColorBackground color.Color
	ColorSurface    color.Color
	ColorSuccess    color.Color
	ColorError      color.Color
)

var (
	TextPrimaryStyle     lipgloss.Style
	TextPrimaryBoldStyle lipgloss.Style
	TextForegroundStyle  lipgloss.Style
	TextMutedStyle       lipgloss.Style
	TextSuccessStyle     lipgloss.Style
	TextErrorStyle       lipgloss.Style
	HeaderStyle          lipgloss.Style
	DividerStyle         lipgloss.Style

	ModalStyle      lipgloss.Style
	ModalTitleStyle lipgloss.Style
	ModalHelpStyle  lipgloss.Style
	SectionStyle    lipgloss.Style

	// Outline buttons are the "off" state of a toggle, filled buttons "on".
	ButtonOutlineStyle  lipgloss.Style
	ButtonFilledStyle   lipgloss.Style
	ButtonPrimaryStyle  lipgloss.Style
	ButtonDisabledStyle lipgloss.Style
	FocusMarkerStyle    lipgloss.Style

	SelectFieldItemSelectedStyle lipgloss.Style
	MenuStyle                    lipgloss.Style

	ToastInfoStyle  lipgloss.Style
	ToastErrorStyle lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorError = p.Error

	TextPrimaryStyle = lipgloss.NewStyle().Foreground(ColorPrimary)
	TextPrimaryBoldStyle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	TextForegroundStyle = lipgloss.NewStyle().Foreground(ColorForeground)
	TextMutedStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	TextSuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	TextErrorStyle = lipgloss.NewStyle().Foreground(ColorError)
	HeaderStyle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true).MarginBottom(1)
	DividerStyle = lipgloss.NewStyle().Foreground(ColorSurface)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorForeground)
	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginTop(1)
	SectionStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Bold(true)

	ButtonOutlineStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.NormalBorder(), false, true).
		BorderForeground(ColorMuted).
		Foreground(ColorMuted)
	ButtonFilledStyle = lipgloss.NewStyle().
		Padding(0, 2).
		Background(ColorMuted).
		Foreground(ColorBackground).
		Bold(true)
	ButtonPrimaryStyle = lipgloss.NewStyle().
		Padding(0, 2).
		Background(ColorPrimary).
		Foreground(ColorBackground).
		Bold(true)
	ButtonDisabledStyle = lipgloss.NewStyle().
		Padding(0, 2).
		Background(ColorSurface).
		Foreground(ColorMuted)
	FocusMarkerStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)

	SelectFieldItemSelectedStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	MenuStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		Padding(0, 1)

	ToastInfoStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSuccess).
		Foreground(ColorForeground).
		Padding(0, 1)
	ToastErrorStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorError).
		Foreground(ColorError).
		Padding(0, 1)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
