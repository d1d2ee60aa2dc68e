package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next        key.Binding
	Prev        key.Binding
	First       key.Binding
	Last        key.Binding
	ScrollDown  key.Binding
	ScrollUp    key.Binding
	PageDown    key.Binding
	PageUp      key.Binding
	Toggle      key.Binding
	Reset       key.Binding
	Grow        key.Binding
	Shrink      key.Binding
	AutoAdvance key.Binding
	Record      key.Binding
	Reload      key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:        key.NewBinding(key.WithKeys("right", "l", "n"), key.WithHelp("→/l", "next")),
		Prev:        key.NewBinding(key.WithKeys("left", "h", "p"), key.WithHelp("←/h", "prev")),
		First:       key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first")),
		Last:        key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last")),
		ScrollDown:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll")),
		ScrollUp:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll")),
		PageDown:    key.NewBinding(key.WithKeys("pgdown", "f"), key.WithHelp("pgdn", "page down")),
		PageUp:      key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup", "page up")),
		Toggle:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/pause")),
		Reset:       key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset timers")),
		Grow:        key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "bigger")),
		Shrink:      key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "smaller")),
		AutoAdvance: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "auto-advance")),
		Record:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "record")),
		Reload:      key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "reload")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Toggle, k.Record, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.First, k.Last},
		{k.ScrollUp, k.ScrollDown, k.PageUp, k.PageDown},
		{k.Toggle, k.Reset, k.AutoAdvance, k.Record},
		{k.Grow, k.Shrink, k.Reload, k.Quit},
	}
}
