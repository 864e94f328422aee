package core

import "time"

// Submission is the outcome of comparing one user response against the
// target of a tick window.
type Submission[T any] struct {
	Value T
	// Time is the response latency: submission instant minus the instant of
	// the tick that opened the window. Zero for a miss.
	Time    time.Duration
	Correct bool
}

// Miss returns the canonical entry recorded when a window closes without
// any response.
func Miss[T any]() Submission[T] {
	return Submission[T]{}
}

// Elapsed computes a response time relative to the window origin.
// A zero origin (no tick yet) or a clock going backwards yields zero.
func Elapsed(origin, at time.Time) time.Duration {
	if origin.IsZero() || at.Before(origin) {
		return 0
	}
	return at.Sub(origin)
}

// Score aggregates correctness over a set of history entries.
type Score struct {
	Score int // Entries marked correct
	Total int // Entries recorded
}

// Add returns the sum of two scores.
func (s Score) Add(o Score) Score {
	return Score{Score: s.Score + o.Score, Total: s.Total + o.Total}
}

// Accuracy returns Score/Total, or 0 when nothing was recorded.
func (s Score) Accuracy() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Score) / float64(s.Total)
}

// Tally counts the correct entries of a submission history.
func Tally[T any](entries []Submission[T]) Score {
	s := Score{Total: len(entries)}
	for _, e := range entries {
		if e.Correct {
			s.Score++
		}
	}
	return s
}
