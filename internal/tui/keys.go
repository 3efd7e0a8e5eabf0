package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Refresh  key.Binding
	Budget   key.Binding
	YearDown key.Binding
	YearUp   key.Binding
	Dismiss  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Budget: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "budget"),
		),
		YearDown: key.NewBinding(
			key.WithKeys("left", "-"),
			key.WithHelp("←/-", "earlier start"),
		),
		YearUp: key.NewBinding(
			key.WithKeys("right", "+", "="),
			key.WithHelp("→/+", "later start"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss error"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Refresh, k.Budget, k.YearDown, k.YearUp, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Refresh, k.Budget},
		{k.YearDown, k.YearUp},
		{k.Dismiss, k.Help, k.Quit},
	}
}
