package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/mindgym/internal/config"
	"github.com/vovakirdan/mindgym/internal/core"
	"github.com/vovakirdan/mindgym/internal/games/nback"
	"github.com/vovakirdan/mindgym/internal/games/snake"
	"github.com/vovakirdan/mindgym/internal/games/tetris"
)

// Intent is what a key press asks the session to do.
type Intent interface {
	intent()
}

// TetrisIntent sends an action to the falling-block game.
type TetrisIntent struct{ Action tetris.Action }

// SnakeIntent steers the snake.
type SnakeIntent struct{ Dir core.Point }

// NBackIntent presses an N-back modality button.
type NBackIntent struct{ Modality string }

// DigitIntent answers PASAT and counting.
type DigitIntent struct{ Digit int }

// HelpIntent toggles the full help view.
type HelpIntent struct{}

// QuitIntent ends the session.
type QuitIntent struct{}

func (TetrisIntent) intent() {}
func (SnakeIntent) intent()  {}
func (NBackIntent) intent()  {}
func (DigitIntent) intent()  {}
func (HelpIntent) intent()   {}
func (QuitIntent) intent()   {}

// KeyMap defines the key bindings for a session.
type KeyMap struct {
	// Falling blocks
	Left      key.Binding
	Right     key.Binding
	Down      key.Binding
	Rotate    key.Binding
	RotateCCW key.Binding
	Drop      key.Binding
	Reset     key.Binding

	// Snake
	SnakeUp    key.Binding
	SnakeDown  key.Binding
	SnakeLeft  key.Binding
	SnakeRight key.Binding

	// N-back
	Position key.Binding
	Color    key.Binding
	Icon     key.Binding
	Number   key.Binding

	// PASAT and counting
	Digit key.Binding

	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default bindings with every binding enabled.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "right"),
		),
		Down: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "down"),
		),
		Rotate: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "rotate"),
		),
		RotateCCW: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "rotate back"),
		),
		Drop: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "drop"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "new board"),
		),
		SnakeUp: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "snake up"),
		),
		SnakeDown: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "snake down"),
		),
		SnakeLeft: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "snake left"),
		),
		SnakeRight: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "snake right"),
		),
		Position: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "position"),
		),
		Color: key.NewBinding(
			key.WithKeys("j"),
			key.WithHelp("j", "color"),
		),
		Icon: key.NewBinding(
			key.WithKeys("k"),
			key.WithHelp("k", "icon"),
		),
		Number: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "number"),
		),
		Digit: key.NewBinding(
			key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("0-9", "answer"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "finish"),
		),
	}
}

// NewKeyMap returns the default bindings with those of disabled games
// switched off, so they neither match nor show in help.
func NewKeyMap(s config.Settings) KeyMap {
	k := DefaultKeyMap()
	for _, b := range []*key.Binding{&k.Left, &k.Right, &k.Down, &k.Rotate, &k.RotateCCW, &k.Drop, &k.Reset} {
		b.SetEnabled(s.Tetris.Enabled)
	}
	for _, b := range []*key.Binding{&k.SnakeUp, &k.SnakeDown, &k.SnakeLeft, &k.SnakeRight} {
		b.SetEnabled(s.Snake.Enabled)
	}
	k.Position.SetEnabled(s.NBack.Enabled && s.NBack.Positions)
	k.Color.SetEnabled(s.NBack.Enabled && s.NBack.Colors)
	k.Icon.SetEnabled(s.NBack.Enabled && s.NBack.Icons)
	k.Number.SetEnabled(s.NBack.Enabled && s.NBack.Numbers)
	k.Digit.SetEnabled(s.Pasat.Enabled || s.Counting.Enabled)
	return k
}

// Map translates a key press into an intent, or nil when the key is
// unbound.
func (k KeyMap) Map(msg tea.KeyMsg) Intent {
	switch {
	case key.Matches(msg, k.Quit):
		return QuitIntent{}
	case key.Matches(msg, k.Help):
		return HelpIntent{}

	case key.Matches(msg, k.Left):
		return TetrisIntent{tetris.Move{DX: -1}}
	case key.Matches(msg, k.Right):
		return TetrisIntent{tetris.Move{DX: 1}}
	case key.Matches(msg, k.Down):
		return TetrisIntent{tetris.Tick{}}
	case key.Matches(msg, k.Rotate):
		return TetrisIntent{tetris.Rotate{}}
	case key.Matches(msg, k.RotateCCW):
		return TetrisIntent{tetris.RotateCCW{}}
	case key.Matches(msg, k.Drop):
		return TetrisIntent{tetris.Drop{}}
	case key.Matches(msg, k.Reset):
		return TetrisIntent{tetris.Reset{}}

	case key.Matches(msg, k.SnakeUp):
		return SnakeIntent{snake.Up}
	case key.Matches(msg, k.SnakeDown):
		return SnakeIntent{snake.Down}
	case key.Matches(msg, k.SnakeLeft):
		return SnakeIntent{snake.Left}
	case key.Matches(msg, k.SnakeRight):
		return SnakeIntent{snake.Right}

	case key.Matches(msg, k.Position):
		return NBackIntent{nback.Positions}
	case key.Matches(msg, k.Color):
		return NBackIntent{nback.Colors}
	case key.Matches(msg, k.Icon):
		return NBackIntent{nback.Icons}
	case key.Matches(msg, k.Number):
		return NBackIntent{nback.Numbers}

	case key.Matches(msg, k.Digit):
		s := msg.String()
		return DigitIntent{int(s[0] - '0')}
	}
	return nil
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Drop, k.Position, k.Digit, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Down, k.Rotate, k.RotateCCW, k.Drop, k.Reset},
		{k.SnakeUp, k.SnakeDown, k.SnakeLeft, k.SnakeRight},
		{k.Position, k.Color, k.Icon, k.Number, k.Digit},
		{k.Help, k.Quit},
	}
}
