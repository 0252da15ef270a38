package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Action is a semantic input translated from a raw key press, mirroring
// the teacher's pattern of decoupling key bindings from game logic.
type Action int

const (
	ActionNone Action = iota
	ActionCursorUp
	ActionCursorDown
	ActionCursorLeft
	ActionCursorRight
	ActionSelect
	ActionRotateCW
	ActionRotateCCW
	ActionEndSession
	ActionNewGame
	ActionHelp
	ActionQuit
)

// keyMap defines the key bindings for the board view, grounded on the
// teacher's ScoreboardKeyMap shape so the same bindings drive both
// Update()'s dispatch and the help.Model footer.
type keyMap struct {
	Up, Down, Left, Right key.Binding
	Select                key.Binding
	RotateCW, RotateCCW   key.Binding
	EndSession            key.Binding
	NewGame               key.Binding
	Help                  key.Binding
	Quit                  key.Binding
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.RotateCW, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Select, k.RotateCW, k.RotateCCW},
		{k.EndSession, k.NewGame},
		{k.Help, k.Quit},
	}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "move cursor"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "move cursor"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "move cursor"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "move cursor"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		RotateCW: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rotate cw"),
		),
		RotateCCW: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("shift+r", "rotate ccw"),
		),
		EndSession: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "end session"),
		),
		NewGame: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new game"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// mapKey translates a key message to a semantic action using km's
// bindings, so Update()'s dispatch and the help footer never drift out
// of sync.
func mapKey(km keyMap, msg tea.KeyMsg) Action {
	switch {
	case key.Matches(msg, km.Quit):
		return ActionQuit
	case key.Matches(msg, km.Up):
		return ActionCursorUp
	case key.Matches(msg, km.Down):
		return ActionCursorDown
	case key.Matches(msg, km.Left):
		return ActionCursorLeft
	case key.Matches(msg, km.Right):
		return ActionCursorRight
	case key.Matches(msg, km.Select):
		return ActionSelect
	case key.Matches(msg, km.RotateCW):
		return ActionRotateCW
	case key.Matches(msg, km.RotateCCW):
		return ActionRotateCCW
	case key.Matches(msg, km.EndSession):
		return ActionEndSession
	case key.Matches(msg, km.NewGame):
		return ActionNewGame
	case key.Matches(msg, km.Help):
		return ActionHelp
	default:
		return ActionNone
	}
}
