package ui

import (
	"charm.land/bubbles/v2/key"
)

// KeyMap holds the global bindings. Editing keys belong to the chatbox and
// the composer.
type KeyMap struct {
	Quit        key.Binding
	NextRoom    key.Binding
	PrevRoom    key.Binding
	LeaveRoom   key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	CopyLast    key.Binding
	ToggleUsers key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		NextRoom: key.NewBinding(
			key.WithKeys("ctrl+n", "ctrl+right"),
			key.WithHelp("ctrl+n", "next room"),
		),
		PrevRoom: key.NewBinding(
			key.WithKeys("ctrl+p", "ctrl+left"),
			key.WithHelp("ctrl+p", "previous room"),
		),
		LeaveRoom: key.NewBinding(
			key.WithKeys("ctrl+w"),
			key.WithHelp("ctrl+w", "leave room"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdown", "scroll down"),
		),
		CopyLast: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy last line"),
		),
		ToggleUsers: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("f2", "toggle users"),
		),
	}
}
