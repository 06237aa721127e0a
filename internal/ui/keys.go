package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists the global key bindings.
type KeyMap struct {
	Quit     key.Binding
	NextView key.Binding
	Sky      key.Binding
	Palettes key.Binding
	Events   key.Binding
	Faster   key.Binding
	Slower   key.Binding
	Forward  key.Binding
	Back     key.Binding
	Labels   key.Binding
	Help     key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		NextView: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
		Sky:      key.NewBinding(key.WithKeys("1", "s"), key.WithHelp("1/s", "sky")),
		Palettes: key.NewBinding(key.WithKeys("2", "p"), key.WithHelp("2/p", "palettes")),
		Events:   key.NewBinding(key.WithKeys("3", "e"), key.WithHelp("3/e", "events")),
		Faster:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "faster")),
		Slower:   key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "slower")),
		Forward:  key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "+1h")),
		Back:     key.NewBinding(key.WithKeys("["), key.WithHelp("[", "-1h")),
		Labels:   key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "labels")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextView, k.Faster, k.Slower, k.Labels, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Sky, k.Palettes, k.Events, k.NextView},
		{k.Faster, k.Slower, k.Forward, k.Back},
		{k.Labels, k.Help, k.Quit},
	}
}
