// Package tetris implements the falling-block puzzle as a pure reducer.
//
// The engine has no clock of its own: the platform layer delivers Tick
// actions at the interval returned by Delay, and user intents arrive as
// Move, Rotate and Drop actions. Penalties from other games arrive as
// Punish.
package tetris

import (
	"math"
	"slices"
	"time"

	"github.com/vovakirdan/mindgym/internal/core"
	"github.com/vovakirdan/mindgym/internal/registry"
)

// ID is the settings key and registry identifier.
const ID = "tetris"

// PunishFillProbability is the chance that a garbage cell is solid.
const PunishFillProbability = 0.8

// Garbage cell colour id.
const garbageCell = 1

// Lines cleared per snake milestone.
const MilestoneLines = 4

func init() {
	registry.Register(registry.GameInfo{
		ID:          ID,
		Title:       "Falling Blocks",
		Description: "Clear lines while the other tasks push garbage rows in.",
		Controls:    "a/d move, s down, w/q rotate, space drop, r reset",
		Order:       0,
	})
}

// LastAction records which kind of action last changed the piece. It
// decides whether a resting piece gets a grace tick.
type LastAction string

// A drop locks the piece and spawns the next, which records LastTick.
const (
	LastTick   LastAction = "tick"
	LastMove   LastAction = "move"
	LastRotate LastAction = "rotate"
	LastPunish LastAction = "punish"
)

// Phase is a derived view of where the engine is in its cycle.
type Phase string

const (
	PhaseSpawning Phase = "spawning"
	PhaseFalling  Phase = "falling"
	PhaseLocking  Phase = "locking"
	PhaseOver     Phase = "over"
)

// State is an immutable snapshot of the falling-block game.
type State struct {
	Board      Board
	Piece      *Piece // nil until the first spawn
	LastAction LastAction
	Lines      int
	Over       bool
}

// Initial returns an empty board with no piece.
func Initial() State {
	return State{
		Board:      NewBoard(),
		LastAction: LastTick,
	}
}

// Phase reports the current cycle position.
func (s State) Phase() Phase {
	switch {
	case s.Over:
		return PhaseOver
	case s.Piece == nil:
		return PhaseSpawning
	case FindShadow(s.Board, *s.Piece).Y <= s.Piece.Y:
		return PhaseLocking
	default:
		return PhaseFalling
	}
}

// Milestone is the number of completed line milestones.
func (s State) Milestone() int {
	return s.Lines / MilestoneLines
}

// View returns the board with the live piece and its shadow merged in, for
// rendering.
func (s State) View() Board {
	if s.Piece == nil {
		return s.Board
	}
	return Merge(s.Board, *s.Piece, FindShadow(s.Board, *s.Piece))
}

// Action is a sealed set of inputs to Reduce.
type Action interface {
	tetrisAction()
}

// Tick advances gravity by one row.
type Tick struct{}

// Move shifts the piece. Rejected when the target overlaps.
type Move struct {
	DX, DY int
}

// Rotate turns the piece clockwise with wall kicks.
type Rotate struct{}

// RotateCCW turns the piece counter-clockwise with wall kicks.
type RotateCCW struct{}

// Drop hard-drops the piece onto its shadow and locks it.
type Drop struct{}

// Punish pushes Lines garbage rows in from the bottom.
type Punish struct {
	Lines int
}

// Reset starts a fresh game. It is the only action accepted once Over.
type Reset struct{}

func (Tick) tetrisAction()      {}
func (Move) tetrisAction()      {}
func (Rotate) tetrisAction()    {}
func (RotateCCW) tetrisAction() {}
func (Drop) tetrisAction()      {}
func (Punish) tetrisAction()    {}
func (Reset) tetrisAction()     {}

// Reduce applies a to s and returns the next state. s is never modified.
func Reduce(s State, a Action, rng core.Rand) State {
	if _, ok := a.(Reset); ok {
		return Initial()
	}
	if s.Over {
		return s
	}

	if p, ok := a.(Punish); ok {
		return punish(s, p.Lines, rng)
	}

	if s.Piece != nil && s.Piece.Y < 4 && HasOverlap(s.Board, *s.Piece) {
		s.Over = true
		return s
	}

	if s.Piece == nil {
		return spawn(s, rng)
	}
	piece := *s.Piece

	switch a := a.(type) {
	case Drop:
		landed := piece
		landed.Y = FindShadow(s.Board, piece).Y
		return lock(s, landed, rng)

	case Tick:
		shadow := FindShadow(s.Board, piece)
		if shadow.Y == piece.Y && (s.LastAction == LastMove || s.LastAction == LastRotate) {
			s.LastAction = LastTick
			return s
		}
		if shadow.Y <= piece.Y {
			return lock(s, piece, rng)
		}
		next := piece.Moved(0, 1)
		s.Piece = &next
		s.LastAction = LastTick
		return s

	case Move:
		next := piece.Moved(a.DX, a.DY)
		if HasOverlap(s.Board, next) {
			return s
		}
		s.Piece = &next
		s.LastAction = LastMove
		return s

	case Rotate:
		return rotate(s, piece, Clockwise)

	case RotateCCW:
		return rotate(s, piece, CounterClockwise)
	}

	return s
}

func rotate(s State, piece Piece, dir Turn) State {
	next, ok := TryRotate(s.Board, piece, dir)
	if !ok {
		return s
	}
	s.Piece = &next
	s.LastAction = LastRotate
	return s
}

// lock settles p into the board, clears full rows and spawns the next
// piece.
func lock(s State, p Piece, rng core.Rand) State {
	board, removed := Eliminate(Merge(s.Board, p))
	s.Board = board
	s.Lines += len(removed)
	return spawn(s, rng)
}

func spawn(s State, rng core.Rand) State {
	p := RandomPiece(rng)
	s.Piece = &p
	s.LastAction = LastTick
	if HasOverlap(s.Board, p) {
		s.Over = true
	}
	return s
}

func punish(s State, lines int, rng core.Rand) State {
	lines = core.Clamp(lines, 0, len(s.Board))
	if lines == 0 {
		return s
	}

	width := Width
	if len(s.Board) > 0 {
		width = len(s.Board[0])
	}

	board := slices.Clone(s.Board[lines:])
	for range lines {
		row := make([]int, width)
		for x := range row {
			if rng.Float64() < PunishFillProbability {
				row[x] = garbageCell
			}
		}
		board = append(board, row)
	}

	s.Board = board
	s.LastAction = LastPunish
	return s
}

// Delay returns the gravity interval after lines cleared lines:
// base / ln(lines² + 4). It shortens as the player progresses.
func Delay(base time.Duration, lines int) time.Duration {
	l := float64(lines)
	return time.Duration(float64(base) / math.Log(l*l+4))
}
