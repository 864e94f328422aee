package tui

import (
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/mindgym/internal/config"
	"github.com/vovakirdan/mindgym/internal/games/nback"
	"github.com/vovakirdan/mindgym/internal/games/snake"
	"github.com/vovakirdan/mindgym/internal/games/tetris"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func allEnabled() config.Settings {
	s := config.DefaultSettings()
	s.Snake.Enabled = true
	s.Pasat.Enabled = true
	s.Counting.Enabled = true
	s.NBack.Icons = true
	s.NBack.Numbers = true
	return s
}

func TestKeyMapMap(t *testing.T) {
	km := NewKeyMap(allEnabled())

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected Intent
	}{
		{"a moves left", runeKey('a'), TetrisIntent{tetris.Move{DX: -1}}},
		{"d moves right", runeKey('d'), TetrisIntent{tetris.Move{DX: 1}}},
		{"s soft drops", runeKey('s'), TetrisIntent{tetris.Tick{}}},
		{"w rotates", runeKey('w'), TetrisIntent{tetris.Rotate{}}},
		{"q rotates back", runeKey('q'), TetrisIntent{tetris.RotateCCW{}}},
		{"space drops", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, TetrisIntent{tetris.Drop{}}},
		{"r resets", runeKey('r'), TetrisIntent{tetris.Reset{}}},
		{"up steers", tea.KeyMsg{Type: tea.KeyUp}, SnakeIntent{snake.Up}},
		{"left steers", tea.KeyMsg{Type: tea.KeyLeft}, SnakeIntent{snake.Left}},
		{"h position", runeKey('h'), NBackIntent{nback.Positions}},
		{"j color", runeKey('j'), NBackIntent{nback.Colors}},
		{"k icon", runeKey('k'), NBackIntent{nback.Icons}},
		{"l number", runeKey('l'), NBackIntent{nback.Numbers}},
		{"digit", runeKey('7'), DigitIntent{7}},
		{"zero", runeKey('0'), DigitIntent{0}},
		{"help", runeKey('?'), HelpIntent{}},
		{"esc quits", tea.KeyMsg{Type: tea.KeyEsc}, QuitIntent{}},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, QuitIntent{}},
		{"unbound", runeKey('z'), nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := km.Map(tc.msg); !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("Map(%q) = %#v, expected %#v", tc.msg.String(), got, tc.expected)
			}
		})
	}
}

func TestKeyMapDisablesInactiveGames(t *testing.T) {
	s := config.DefaultSettings() // falling blocks and N-back with colors
	km := NewKeyMap(s)

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected Intent
	}{
		{"snake off", tea.KeyMsg{Type: tea.KeyUp}, nil},
		{"icons off", runeKey('k'), nil},
		{"numbers off", runeKey('l'), nil},
		{"digits off", runeKey('3'), nil},
		{"colors on", runeKey('j'), NBackIntent{nback.Colors}},
		{"blocks on", runeKey('a'), TetrisIntent{tetris.Move{DX: -1}}},
		{"quit always", tea.KeyMsg{Type: tea.KeyEsc}, QuitIntent{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := km.Map(tc.msg); !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("Map(%q) = %#v, expected %#v", tc.msg.String(), got, tc.expected)
			}
		})
	}
}

func TestKeyMapHelpSkipsDisabled(t *testing.T) {
	km := NewKeyMap(config.DefaultSettings())

	for _, b := range km.FullHelp()[1] {
		if b.Enabled() {
			t.Errorf("snake binding %q should be disabled", b.Help().Key)
		}
	}
	if !km.Quit.Enabled() || !km.Help.Enabled() {
		t.Error("help and quit should stay enabled")
	}
}
