// Package nback implements a multi-modal N-back working-memory test.
//
// Every tick pushes a stimulus that assigns one value per modality. The
// player presses the modality keys whose value matches the stimulus from N
// ticks earlier. Presses within one window accumulate, and the tick that
// closes the window scores them.
package nback

import (
	"slices"
	"time"

	"github.com/vovakirdan/mindgym/internal/core"
	"github.com/vovakirdan/mindgym/internal/registry"
)

// ID is the settings key and registry identifier.
const ID = "nback"

// DefaultRepeatProbability is the chance that a modality deliberately
// repeats the value from N steps back, which keeps the true-match rate near
// 30%.
const DefaultRepeatProbability = 0.3

func init() {
	registry.Register(registry.GameInfo{
		ID:          ID,
		Title:       "N-Back",
		Description: "Press the channels that match the stimulus from N steps ago.",
		Controls:    "h position, j colour, k icon, l number",
		Scored:      true,
		Order:       2,
	})
}

// Stimulus maps a modality name to an index into its value list.
type Stimulus map[string]int

// Answer is a submission with per-modality detail.
type Answer struct {
	core.Submission[[]string]

	Matched []string // true matches that were pressed
	Missing []string // true matches that were not pressed
	Wrong   []string // pressed modalities without a match
}

// State is an immutable snapshot of the N-back game.
type State struct {
	N          int
	P          float64
	Modalities []Modality
	Stack      []Stimulus
	Time       time.Time // last tick, origin for response times

	// Pending accumulates presses until the next tick; nil when none.
	Pending *Answer

	// History holds one scored answer per tick once a target exists.
	History []Answer
}

// Initial returns an empty game at level n.
func Initial(n int, mods []Modality) State {
	return State{
		N:          n,
		P:          DefaultRepeatProbability,
		Modalities: mods,
	}
}

// Current returns the newest stimulus, or nil before the first tick.
func (s State) Current() Stimulus {
	if len(s.Stack) == 0 {
		return nil
	}
	return s.Stack[len(s.Stack)-1]
}

// Display returns the display value of the current stimulus for a modality.
func (s State) Display(name string) (string, bool) {
	cur := s.Current()
	for _, m := range s.Modalities {
		if m.Name != name {
			continue
		}
		i, ok := cur[name]
		if !ok {
			return "", false
		}
		return m.Value(i), true
	}
	return "", false
}

// Ready reports whether the stack has a lag-N target to answer against.
func (s State) Ready() bool {
	return len(s.Stack) > s.N
}

// Matches returns the modalities whose current value equals the value from
// exactly N steps back, in modality order.
func (s State) Matches() []string {
	if !s.Ready() {
		return nil
	}
	cur := s.Stack[len(s.Stack)-1]
	prev := s.Stack[len(s.Stack)-1-s.N]

	var out []string
	for _, m := range s.Modalities {
		c, ok1 := cur[m.Name]
		p, ok2 := prev[m.Name]
		if ok1 && ok2 && c == p {
			out = append(out, m.Name)
		}
	}
	return out
}

// Validate scores a set of pressed modalities against the current matches.
// An empty set is correct iff there are no matches.
func (s State) Validate(value []string) Answer {
	matches := s.Matches()

	a := Answer{}
	a.Value = value
	for _, m := range matches {
		if slices.Contains(value, m) {
			a.Matched = append(a.Matched, m)
		} else {
			a.Missing = append(a.Missing, m)
		}
	}
	for _, v := range value {
		if !slices.Contains(matches, v) {
			a.Wrong = append(a.Wrong, v)
		}
	}
	a.Correct = len(a.Missing) == 0 && len(a.Wrong) == 0
	return a
}

// Score tallies the history.
func (s State) Score() core.Score {
	var sc core.Score
	for _, a := range s.History {
		sc.Total++
		if a.Correct {
			sc.Score++
		}
	}
	return sc
}

// Last returns the most recent scored answer.
func (s State) Last() (Answer, bool) {
	if len(s.History) == 0 {
		return Answer{}, false
	}
	return s.History[len(s.History)-1], true
}

// Action is a sealed set of inputs to Reduce.
type Action interface {
	nbackAction()
}

// Tick closes the current window and pushes the next stimulus.
type Tick struct {
	Time time.Time
}

// Submit presses one or more modality keys.
type Submit struct {
	Value []string
	Time  time.Time
}

func (Tick) nbackAction()   {}
func (Submit) nbackAction() {}

// Reduce applies a to s and returns the next state. s is never modified.
func Reduce(s State, a Action, rng core.Rand) State {
	switch a := a.(type) {
	case Tick:
		if s.Ready() {
			var pressed []string
			var elapsed time.Duration
			if s.Pending != nil {
				pressed = s.Pending.Value
				elapsed = s.Pending.Time
			}
			entry := s.Validate(pressed)
			entry.Time = elapsed
			s.History = slices.Concat(s.History, []Answer{entry})
		}
		s.Stack = slices.Concat(s.Stack, []Stimulus{s.next(rng)})
		s.Time = a.Time
		s.Pending = nil
		return s

	case Submit:
		if !s.Ready() {
			return s
		}
		var value []string
		elapsed := core.Elapsed(s.Time, a.Time)
		if s.Pending != nil {
			value = slices.Clone(s.Pending.Value)
			elapsed = s.Pending.Time
		}
		for _, v := range a.Value {
			if !slices.Contains(value, v) {
				value = append(value, v)
			}
		}
		slices.Sort(value)

		pending := s.Validate(value)
		pending.Time = elapsed
		s.Pending = &pending
		return s
	}
	return s
}

// next draws a stimulus. Each modality independently repeats the value from
// N steps back with probability P, otherwise picks uniformly.
func (s State) next(rng core.Rand) Stimulus {
	var back Stimulus
	if s.N > 0 && len(s.Stack) >= s.N {
		back = s.Stack[len(s.Stack)-s.N]
	}

	out := make(Stimulus, len(s.Modalities))
	for _, m := range s.Modalities {
		if len(m.Values) == 0 {
			continue
		}
		if v, ok := back[m.Name]; ok && rng.Float64() < s.P {
			out[m.Name] = v
			continue
		}
		out[m.Name] = rng.Intn(len(m.Values))
	}
	return out
}
