// Package pasat implements the paced serial addition test: each tick shows
// a digit and the player types the last digit of the sum of the newest N.
package pasat

import (
	"slices"
	"time"

	"github.com/vovakirdan/mindgym/internal/core"
	"github.com/vovakirdan/mindgym/internal/registry"
)

// ID is the settings key and registry identifier.
const ID = "pasat"

func init() {
	registry.Register(registry.GameInfo{
		ID:          ID,
		Title:       "PASAT",
		Description: "Type the last digit of the sum of the newest N numbers.",
		Controls:    "0-9 answer",
		Scored:      true,
		Order:       3,
	})
}

// State is an immutable snapshot of the PASAT game.
type State struct {
	N       int
	Stack   []int
	Time    time.Time
	Pending *core.Submission[int]
	History []core.Submission[int]
}

// Initial returns an empty game summing windows of n.
func Initial(n int) State {
	return State{N: n}
}

// Current returns the newest digit, or 0 before the first tick.
func (s State) Current() int {
	if len(s.Stack) == 0 {
		return 0
	}
	return s.Stack[len(s.Stack)-1]
}

// Target is the last digit of the sum of the newest N stack entries.
func (s State) Target() int {
	from := max(len(s.Stack)-s.N, 0)
	sum := 0
	for _, v := range s.Stack[from:] {
		sum += v
	}
	return sum % 10
}

// Score tallies the history.
func (s State) Score() core.Score {
	return core.Tally(s.History)
}

// Action is a sealed set of inputs to Reduce.
type Action interface {
	pasatAction()
}

// Tick closes the current window and pushes a digit 1–9.
type Tick struct {
	Time time.Time
}

// Submit answers the current window. Only the first answer counts.
type Submit struct {
	Value int
	Time  time.Time
}

func (Tick) pasatAction()   {}
func (Submit) pasatAction() {}

// Reduce applies a to s and returns the next state. s is never modified.
func Reduce(s State, a Action, rng core.Rand) State {
	switch a := a.(type) {
	case Tick:
		if len(s.Stack) >= s.N {
			entry := core.Miss[int]()
			if s.Pending != nil {
				entry = *s.Pending
			}
			s.History = slices.Concat(s.History, []core.Submission[int]{entry})
		}
		s.Stack = slices.Concat(s.Stack, []int{rng.Intn(9) + 1})
		s.Time = a.Time
		s.Pending = nil
		return s

	case Submit:
		if s.Pending != nil {
			return s
		}
		s.Pending = &core.Submission[int]{
			Value:   a.Value,
			Time:    core.Elapsed(s.Time, a.Time),
			Correct: a.Value == s.Target(),
		}
		return s
	}
	return s
}
