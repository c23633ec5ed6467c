package form

// menuItem is the list item used by Dropdown.
type menuItem struct {
	label string
	index int
}

func (i menuItem) FilterValue() string { return i.label }
