package counting

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/mindgym/internal/core"
)

// Field size of the dot display. Points use 1-based coordinates.
const (
	FieldWidth  = 10
	FieldHeight = 10
)

// Seed derives the layout seed for a round from its tick time and count,
// so every redraw of the same round shows the same dots.
func Seed(tick time.Time, count int) int64 {
	return tick.UnixMilli()*31 + int64(count)
}

// Points returns n distinct points in [1,w]×[1,h], reproducible for a seed.
// n is capped at w*h.
func Points(seed int64, n, w, h int) []core.Point {
	if w <= 0 || h <= 0 || n <= 0 {
		return nil
	}
	n = min(n, w*h)

	rng := rand.New(rand.NewSource(seed))
	seen := make(map[core.Point]struct{}, n)
	out := make([]core.Point, 0, n)
	for len(out) < n {
		p := core.Pt(rng.Intn(w)+1, rng.Intn(h)+1)
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// Layout returns the dots for the current round.
func (s State) Layout() []core.Point {
	n := s.Current()
	return Points(Seed(s.Time, n), n, FieldWidth, FieldHeight)
}
