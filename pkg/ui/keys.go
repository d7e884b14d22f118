package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings of the diagram view.
type KeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Select key.Binding
	Learn  key.Binding
	Video  key.Binding
	Copy   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "right", "down", "l", "j"),
			key.WithHelp("tab/→", "next region"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left", "up", "h", "k"),
			key.WithHelp("shift+tab/←", "prev region"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Learn: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "learn more"),
		),
		Video: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "watch video"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy link"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Select, k.Learn, k.Video, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Select},
		{k.Learn, k.Video, k.Copy},
		{k.Help, k.Quit},
	}
}
