package tui

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Settings key.Binding
	Dismiss  key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Settings: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "settings")),
		Dismiss:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) help() []key.Binding {
	return []key.Binding{k.Settings, k.Quit}
}
