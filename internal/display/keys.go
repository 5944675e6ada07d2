package display

import "github.com/charmbracelet/bubbles/key"

// keyMap lists every binding the timer screen understands.
type keyMap struct {
	Start   key.Binding
	Pause   key.Binding
	Toggle  key.Binding
	Stop    key.Binding
	Reset   key.Binding
	AddOne  key.Binding
	AddFive key.Binding
	Left    key.Binding
	Right   key.Binding
	Press   key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Start: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "start"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "start/pause"),
		),
		Stop: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "stop"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		AddOne: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "+1 min"),
		),
		AddFive: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "+5 min"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("←", "prev"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("→", "next"),
		),
		Press: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "press"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Stop, k.Reset, k.AddOne, k.AddFive, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Pause, k.Toggle},
		{k.Stop, k.Reset},
		{k.AddOne, k.AddFive},
		{k.Left, k.Right, k.Press, k.Quit},
	}
}
