// Package counting implements the visual counting test: each tick scatters
// a number of points and the player types the last digit of the count.
package counting

import (
	"slices"
	"time"

	"github.com/vovakirdan/mindgym/internal/core"
	"github.com/vovakirdan/mindgym/internal/registry"
)

// ID is the settings key and registry identifier.
const ID = "counting"

func init() {
	registry.Register(registry.GameInfo{
		ID:          ID,
		Title:       "Counting",
		Description: "Count the dots and type the last digit of the total.",
		Controls:    "0-9 answer",
		Scored:      true,
		Order:       4,
	})
}

// State is an immutable snapshot of the counting game.
type State struct {
	Min, Max int // per-round count is drawn from [Min, Max)
	Stack    []int
	Time     time.Time
	Pending  *core.Submission[int]
	History  []core.Submission[int]
}

// Initial returns an empty game drawing counts from [min, max).
func Initial(min, max int) State {
	return State{Min: min, Max: max}
}

// Current returns the newest count, or 0 before the first tick.
func (s State) Current() int {
	if len(s.Stack) == 0 {
		return 0
	}
	return s.Stack[len(s.Stack)-1]
}

// Target is the last digit of the current count.
func (s State) Target() int {
	return s.Current() % 10
}

// Score tallies the history.
func (s State) Score() core.Score {
	return core.Tally(s.History)
}

// Action is a sealed set of inputs to Reduce.
type Action interface {
	countingAction()
}

// Tick closes the current window and draws the next count.
type Tick struct {
	Time time.Time
}

// Submit answers the current window with a single digit. Only the first
// answer counts.
type Submit struct {
	Value int
	Time  time.Time
}

func (Tick) countingAction()   {}
func (Submit) countingAction() {}

// Reduce applies a to s and returns the next state. s is never modified.
func Reduce(s State, a Action, rng core.Rand) State {
	switch a := a.(type) {
	case Tick:
		if len(s.Stack) > 0 {
			entry := core.Miss[int]()
			if s.Pending != nil {
				entry = *s.Pending
			}
			s.History = slices.Concat(s.History, []core.Submission[int]{entry})
		}
		s.Stack = slices.Concat(s.Stack, []int{s.draw(rng)})
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

func (s State) draw(rng core.Rand) int {
	if s.Max <= s.Min {
		return s.Min
	}
	return s.Min + rng.Intn(s.Max-s.Min)
}
