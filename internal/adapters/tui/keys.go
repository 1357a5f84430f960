package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the application.
type KeyMap struct {
	// Routing
	Timer   key.Binding
	History key.Binding

	// Timer page
	NextField key.Binding
	PrevField key.Binding
	Start     key.Binding
	Interrupt key.Binding

	// History page
	Filter      key.Binding
	ClearFilter key.Binding

	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Timer: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "timer"),
		),
		History: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "history"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "prev field"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		Interrupt: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "interrupt"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		ClearFilter: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear filter"),
		),
		Help: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// routeKeys narrows the key map to what the current route can use, so the
// help line only shows bindings that do something.
type routeKeys struct {
	km      KeyMap
	history bool
	active  bool
}

// ShortHelp implements help.KeyMap.
func (r routeKeys) ShortHelp() []key.Binding {
	if r.history {
		return []key.Binding{r.km.Timer, r.km.Filter, r.km.Help, r.km.Quit}
	}
	if r.active {
		return []key.Binding{r.km.Interrupt, r.km.History, r.km.Help, r.km.Quit}
	}
	return []key.Binding{r.km.Start, r.km.NextField, r.km.History, r.km.Help, r.km.Quit}
}

// FullHelp implements help.KeyMap.
func (r routeKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{r.km.Timer, r.km.History},
		{r.km.NextField, r.km.PrevField, r.km.Start, r.km.Interrupt},
		{r.km.Filter, r.km.ClearFilter},
		{r.km.Help, r.km.Quit},
	}
}
