// Package form provides small reusable form controls for TUI dialogs.
package form

import (
	"io"

	"charm.land/bubbles/v2/list"
	tea "charm.land/bubbletea/v2"
	"github.com/colonyops/maple/internal/core/styles"
)

// menuDelegate renders items in a dropdown menu.
type menuDelegate struct{}

func (d menuDelegate) Height() int                             { return 1 }
func (d menuDelegate) Spacing() int                            { return 0 }
func (d menuDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d menuDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(menuItem)
	if !ok {
		return
	}

	style := styles.TextForegroundStyle
	cursor := "  "
	if index == m.Index() {
		style = styles.SelectFieldItemSelectedStyle
		cursor = "> "
	}

	_, _ = io.WriteString(w, cursor)
	_, _ = io.WriteString(w, style.Render(item.label))
}

// Dropdown is a single-choice menu that is opened on demand and closes
// once an option is chosen or the menu is dismissed.
type Dropdown struct {
	list    list.Model
	options []string
	open    bool
}

// NewDropdown creates a closed dropdown over static options.
func NewDropdown(options []string) *Dropdown {
	items := make([]list.Item, len(options))
	for i, opt := range options {
		items[i] = menuItem{label: opt, index: i}
	}

	width := 0
	for _, opt := range options {
		width = max(width, len(opt))
	}

	l := list.New(items, menuDelegate{}, width+2, max(len(options), 1))
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowFilter(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()

	return &Dropdown{list: l, options: options}
}

// Open shows the menu with the cursor on current, or on the first option
// when current is not one of the options.
func (d *Dropdown) Open(current string) {
	d.open = true
	d.list.Select(0)
	for i, opt := range d.options {
		if opt == current {
			d.list.Select(i)
			break
		}
	}
}

// Close hides the menu without choosing.
func (d *Dropdown) Close() { d.open = false }

// IsOpen reports whether the menu is shown.
func (d *Dropdown) IsOpen() bool { return d.open }

// Highlighted returns the option under the cursor.
func (d *Dropdown) Highlighted() string {
	if si, ok := d.list.SelectedItem().(menuItem); ok && si.index >= 0 && si.index < len(d.options) {
		return d.options[si.index]
	}
	return ""
}

// Update handles keys while the menu is open. It returns the chosen option
// and true when enter is pressed; esc closes the menu without a choice.
func (d *Dropdown) Update(msg tea.Msg) (string, bool, tea.Cmd) {
	if !d.open {
		return "", false, nil
	}

	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case "enter", "space", " ":
			choice := d.Highlighted()
			d.open = false
			return choice, choice != "", nil
		case "esc":
			d.open = false
			return "", false, nil
		}
	}

	var cmd tea.Cmd
	d.list, cmd = d.list.Update(msg)
	return "", false, cmd
}

// View renders the open menu, or nothing when closed.
func (d *Dropdown) View() string {
	if !d.open {
		return ""
	}
	return styles.MenuStyle.Render(d.list.View())
}
