// Package config provides the session settings record, YAML loading with
// embedded defaults, environment overrides and the shareable link codec.
package config

import (
	"errors"
	"time"

	"github.com/vovakirdan/mindgym/internal/core"
)

// ErrNoGamesEnabled is returned by Validate when a settings record would
// start a session with nothing to play.
var ErrNoGamesEnabled = errors.New("config: no games enabled")

// Settings is the per-session configuration. It is created once when a
// session starts and never modified afterwards. Timers are milliseconds.
type Settings struct {
	Tetris   TetrisSettings   `yaml:"tetris" json:"tetris"`
	Snake    SnakeSettings    `yaml:"snake" json:"snake"`
	NBack    NBackSettings    `yaml:"nback" json:"nback"`
	Counting CountingSettings `yaml:"counting" json:"counting"`
	Pasat    PasatSettings    `yaml:"pasat" json:"pasat"`
}

// TetrisSettings configures the falling-block game. Timer is the base
// gravity delay before line-count speedup.
type TetrisSettings struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
	Timer   int  `yaml:"timer" json:"timer"`
}

// SnakeSettings configures the snake game.
type SnakeSettings struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
	Timer   int  `yaml:"timer" json:"timer"`
}

// NBackSettings configures the N-back test. Positions is always on.
type NBackSettings struct {
	Enabled   bool `yaml:"enabled" json:"enabled"`
	Timer     int  `yaml:"timer" json:"timer"`
	N         int  `yaml:"n" json:"n"`
	Positions bool `yaml:"positions" json:"positions"`
	Colors    bool `yaml:"colors" json:"colors"`
	Icons     bool `yaml:"icons" json:"icons"`
	Numbers   bool `yaml:"numbers" json:"numbers"`
}

// CountingSettings configures the counting test. Counts are drawn from
// [Min, Max).
type CountingSettings struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
	Timer   int  `yaml:"timer" json:"timer"`
	Min     int  `yaml:"min" json:"min"`
	Max     int  `yaml:"max" json:"max"`
}

// PasatSettings configures the serial addition test.
type PasatSettings struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
	Timer   int  `yaml:"timer" json:"timer"`
	N       int  `yaml:"n" json:"n"`
}

// Limits accepted by Normalize.
const (
	TetrisTimerMin = 1
	TetrisTimerMax = 1000
	SnakeTimerMin  = 20
	SnakeTimerMax  = 300
	RoundTimerMin  = 2000
	RoundTimerMax  = 10000
	LevelMin       = 1
	LevelMax       = 9
	CountMin       = 1
	CountMax       = 30
)

// Millis converts a millisecond timer setting to a duration.
func Millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// Normalize returns a copy with every tunable clamped to its accepted
// range.
func (s Settings) Normalize() Settings {
	s.Tetris.Timer = core.Clamp(s.Tetris.Timer, TetrisTimerMin, TetrisTimerMax)
	s.Snake.Timer = core.Clamp(s.Snake.Timer, SnakeTimerMin, SnakeTimerMax)

	s.NBack.Timer = core.Clamp(s.NBack.Timer, RoundTimerMin, RoundTimerMax)
	s.NBack.N = core.Clamp(s.NBack.N, LevelMin, LevelMax)
	s.NBack.Positions = true

	s.Counting.Timer = core.Clamp(s.Counting.Timer, RoundTimerMin, RoundTimerMax)
	s.Counting.Min = core.Clamp(s.Counting.Min, CountMin, CountMax-1)
	s.Counting.Max = core.Clamp(s.Counting.Max, s.Counting.Min+1, CountMax)

	s.Pasat.Timer = core.Clamp(s.Pasat.Timer, RoundTimerMin, RoundTimerMax)
	s.Pasat.N = core.Clamp(s.Pasat.N, LevelMin, LevelMax)
	return s
}

// Validate reports whether the settings can start a session.
func (s Settings) Validate() error {
	if len(s.EnabledGames()) == 0 {
		return ErrNoGamesEnabled
	}
	return nil
}

// Game IDs in display order. They match the registry IDs.
var gameOrder = []string{"tetris", "snake", "nback", "pasat", "counting"}

// EnabledGames returns the IDs of enabled games in display order.
func (s Settings) EnabledGames() []string {
	var out []string
	for _, id := range gameOrder {
		if s.Enabled(id) {
			out = append(out, id)
		}
	}
	return out
}

// Enabled reports whether the game with the given ID is on.
func (s Settings) Enabled(id string) bool {
	switch id {
	case "tetris":
		return s.Tetris.Enabled
	case "snake":
		return s.Snake.Enabled
	case "nback":
		return s.NBack.Enabled
	case "pasat":
		return s.Pasat.Enabled
	case "counting":
		return s.Counting.Enabled
	}
	return false
}

// Toggle returns a copy with the game's Enabled flag flipped. Unknown IDs
// are ignored.
func (s Settings) Toggle(id string) Settings {
	switch id {
	case "tetris":
		s.Tetris.Enabled = !s.Tetris.Enabled
	case "snake":
		s.Snake.Enabled = !s.Snake.Enabled
	case "nback":
		s.NBack.Enabled = !s.NBack.Enabled
	case "pasat":
		s.Pasat.Enabled = !s.Pasat.Enabled
	case "counting":
		s.Counting.Enabled = !s.Counting.Enabled
	}
	return s
}
