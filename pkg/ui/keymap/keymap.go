package keymap

import "github.com/charmbracelet/bubbles/key"

// KeyMap is a map of key bindings for the UI.
type KeyMap struct {
	Quit       key.Binding
	Help       key.Binding
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Home       key.Binding
	End        key.Binding
	Search     key.Binding
	Back       key.Binding
	Select     key.Binding
	SortNext   key.Binding
	SortDir    key.Binding
	SortColumn key.Binding
	Reload     key.Binding
}

// DefaultKeyMap returns the default key map.
func DefaultKeyMap() *KeyMap {
	km := new(KeyMap)

	km.Quit = key.NewBinding(
		key.WithKeys(
			"q",
			"ctrl+c",
		),
		key.WithHelp(
			"q",
			"quit",
		),
	)

	km.Help = key.NewBinding(
		key.WithKeys(
			"?",
		),
		key.WithHelp(
			"?",
			"toggle help",
		),
	)

	km.Up = key.NewBinding(
		key.WithKeys(
			"up",
			"k",
		),
		key.WithHelp(
			"↑/k",
			"up",
		),
	)

	km.Down = key.NewBinding(
		key.WithKeys(
			"down",
			"j",
		),
		key.WithHelp(
			"↓/j",
			"down",
		),
	)

	km.PageUp = key.NewBinding(
		key.WithKeys(
			"pgup",
			"ctrl+u",
		),
		key.WithHelp(
			"pgup",
			"page up",
		),
	)

	km.PageDown = key.NewBinding(
		key.WithKeys(
			"pgdown",
			"ctrl+d",
		),
		key.WithHelp(
			"pgdn",
			"page down",
		),
	)

	km.Home = key.NewBinding(
		key.WithKeys(
			"home",
			"g",
		),
		key.WithHelp(
			"g/home",
			"go to top",
		),
	)

	km.End = key.NewBinding(
		key.WithKeys(
			"end",
			"G",
		),
		key.WithHelp(
			"G/end",
			"go to bottom",
		),
	)

	km.Search = key.NewBinding(
		key.WithKeys(
			"/",
		),
		key.WithHelp(
			"/",
			"search",
		),
	)

	km.Back = key.NewBinding(
		key.WithKeys(
			"esc",
		),
		key.WithHelp(
			"esc",
			"back",
		),
	)

	km.Select = key.NewBinding(
		key.WithKeys(
			"enter",
		),
		key.WithHelp(
			"enter",
			"open",
		),
	)

	km.SortNext = key.NewBinding(
		key.WithKeys(
			"s",
		),
		key.WithHelp(
			"s",
			"sort column",
		),
	)

	km.SortDir = key.NewBinding(
		key.WithKeys(
			"S",
		),
		key.WithHelp(
			"S",
			"sort direction",
		),
	)

	km.SortColumn = key.NewBinding(
		key.WithKeys(
			"1",
			"2",
			"3",
			"4",
			"5",
		),
		key.WithHelp(
			"1-5",
			"sort by column",
		),
	)

	km.Reload = key.NewBinding(
		key.WithKeys(
			"r",
		),
		key.WithHelp(
			"r",
			"reload",
		),
	)

	return km
}
