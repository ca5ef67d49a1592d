package components

import "charm.land/bubbles/v2/key"

// KeyMap holds the bindings shared by the quiz screens.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Left   key.Binding
	Right  key.Binding
	// PickLeft and PickRight choose a photo without moving focus first.
	PickLeft  key.Binding
	PickRight key.Binding
	Back      key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", "space"),
			key.WithHelp("Enter", "select"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "left photo"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "right photo"),
		),
		PickLeft: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "pick left"),
		),
		PickRight: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "pick right"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "back"),
		),
	}
}
