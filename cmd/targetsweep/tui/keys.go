package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the key bindings of the result list.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	TrashOne key.Binding
	TrashAll key.Binding
	Quit     key.Binding

	// selectHint only appears in the help line.
	selectHint key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next"),
		),
		TrashOne: key.NewBinding(
			key.WithKeys("delete", "x"),
			key.WithHelp("del", "trash selected"),
		),
		TrashAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "trash all"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "q", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
		selectHint: key.NewBinding(
			key.WithKeys("up", "down"),
			key.WithHelp("up/down", "select"),
		),
	}
}

// ShortHelp returns the four actions shown in the help line.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.selectHint, k.TrashAll, k.TrashOne, k.Quit}
}

// FullHelp returns every binding.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.TrashOne, k.TrashAll},
		{k.Quit},
	}
}
