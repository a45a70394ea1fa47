package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings of the list and reader views.
type KeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding

	// Open / close a message
	Open key.Binding
	Back key.Binding

	// Actions on the selected message
	Delete key.Binding
	Save   key.Binding
	Export key.Binding

	// Manual refresh
	Refresh key.Binding

	// Quit works everywhere except inside the dialog; ForceQuit works
	// everywhere.
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/↓", "move"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("backspace", "delete"),
			key.WithHelp("backspace", "back"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "D"),
			key.WithHelp("d", "delete"),
		),
		Save: key.NewBinding(
			key.WithKeys("s", "S"),
			key.WithHelp("s", "save"),
		),
		Export: key.NewBinding(
			key.WithKeys("e", "E"),
			key.WithHelp("e", "export .eml"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}

// ListHelp returns the hints shown above the message list.
func (k *KeyMap) ListHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Open, k.Delete, k.Save, k.Export, k.Refresh, k.Quit,
	}
}

// ReaderHelp returns the hints shown above an open message.
func (k *KeyMap) ReaderHelp() []key.Binding {
	scroll := key.NewBinding(
		key.WithKeys(k.Up.Keys()...),
		key.WithHelp("↑/↓", "scroll"),
	)
	return []key.Binding{scroll, k.Back, k.Quit}
}

// DialogKeyMap defines the keybindings of the confirmation dialog.
type DialogKeyMap struct {
	Left    key.Binding
	Right   key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultDialogKeyMap returns the default dialog keybindings.
func DefaultDialogKeyMap() *DialogKeyMap {
	return &DialogKeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h", "<"),
			key.WithHelp("←/→", "choose"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l", ">"),
			key.WithHelp("→", "no"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "q"),
			key.WithHelp("esc/q", "cancel"),
		),
	}
}

// ShortHelp returns the hints shown inside the dialog.
func (k *DialogKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Confirm, k.Cancel}
}

// FullHelp returns the same hints as ShortHelp.
func (k *DialogKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
