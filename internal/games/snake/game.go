// Package snake implements a toroidal snake as a pure reducer.
package snake

import (
	"time"

	"github.com/vovakirdan/mindgym/internal/core"
	"github.com/vovakirdan/mindgym/internal/registry"
)

// ID is the settings key and registry identifier.
const ID = "snake"

// Grid and growth defaults.
const (
	DefaultWidth  = 12
	DefaultHeight = 24
	DefaultLength = 5
	DefaultInc    = 3

	// FoodExpiry is the lifetime, in ticks, of freshly spawned food.
	FoodExpiry = 100

	// initialFoodExpiry is the lifetime of the first food item.
	initialFoodExpiry = 1000
)

// Headings.
var (
	Up    = core.Pt(0, -1)
	Down  = core.Pt(0, 1)
	Left  = core.Pt(-1, 0)
	Right = core.Pt(1, 0)
)

// StartPoint is where a fresh body begins.
var StartPoint = core.Pt(5, 5)

func init() {
	registry.Register(registry.GameInfo{
		ID:          ID,
		Title:       "Snake",
		Description: "Keep eating before food expires and avoid biting yourself.",
		Controls:    "arrow keys steer",
		Order:       1,
	})
}

// Food is an edible cell. Expires counts remaining ticks; 0 never expires.
type Food struct {
	core.Point
	Expires int
}

// State is an immutable snapshot of the snake game.
type State struct {
	W, H  int
	N     int // target body length
	Inc   int // growth per food
	Score int
	Body  []core.Point // head first
	Food  []Food
	Dir   core.Point
	Over  bool
	Time  time.Time // last tick

	// ExpiredFood holds the food that timed out on the last tick.
	ExpiredFood []core.Point
}

// Initial returns a fresh game growing by inc per food.
func Initial(inc int) State {
	return State{
		W:    DefaultWidth,
		H:    DefaultHeight,
		N:    DefaultLength,
		Inc:  inc,
		Body: []core.Point{StartPoint},
		Food: []Food{{Point: core.Pt(2, 2), Expires: initialFoodExpiry}},
		Dir:  Right,
	}
}

// Head returns the first body segment.
func (s State) Head() core.Point {
	if len(s.Body) == 0 {
		return StartPoint
	}
	return s.Body[0]
}

// Collides reports whether the body crosses itself.
func (s State) Collides() bool {
	seen := make(map[core.Point]struct{}, len(s.Body))
	for _, p := range s.Body {
		if _, ok := seen[p]; ok {
			return true
		}
		seen[p] = struct{}{}
	}
	return false
}

// Action is a sealed set of inputs to Reduce.
type Action interface {
	snakeAction()
}

// Tick advances the snake one cell. A non-nil Restart revives a finished
// game and overrides parts of the stepped state.
type Tick struct {
	Time    time.Time
	Restart *Restart
}

// Restart lists the overrides applied after a restarting tick.
type Restart struct {
	Body      []core.Point // nil keeps the stepped body
	ResetFood bool         // clear food and expired food
	N         int          // 0 keeps the current length
}

// Move changes heading. Rejected when it would turn back into the neck.
type Move struct {
	Dir core.Point
}

func (Tick) snakeAction() {}
func (Move) snakeAction() {}

// Reduce applies a to s and returns the next state. s is never modified.
func Reduce(s State, a Action, rng core.Rand) State {
	tick, isTick := a.(Tick)
	restart := isTick && tick.Restart != nil

	if !restart && (s.Over || s.Collides()) {
		s.Over = true
		return s
	}

	switch a := a.(type) {
	case Tick:
		return step(s, a, rng)

	case Move:
		if len(s.Body) > 1 && s.Head().Add(a.Dir).Wrap(s.W, s.H) == s.Body[1] {
			return s
		}
		s.Dir = a.Dir
		return s
	}

	return s
}

func step(s State, t Tick, rng core.Rand) State {
	head := s.Head()
	newHead := head.Add(s.Dir).Wrap(s.W, s.H)

	body := make([]core.Point, 0, s.N)
	body = append(body, newHead)
	for _, p := range s.Body {
		if len(body) >= s.N {
			break
		}
		body = append(body, p)
	}

	eaten := 0
	var expired []core.Point
	food := make([]Food, 0, len(s.Food)+1)
	for _, f := range s.Food {
		if f.Point == head {
			eaten = 1
			continue
		}
		if f.Expires == 1 {
			expired = append(expired, f.Point)
			continue
		}
		if f.Expires > 1 {
			f.Expires--
		}
		food = append(food, f)
	}

	if len(food) == 0 || eaten > 0 {
		food = append(food, Food{
			Point:   core.Pt(rng.Intn(s.W), rng.Intn(s.H)),
			Expires: FoodExpiry,
		})
	}

	s.Body = body
	s.Food = food
	s.ExpiredFood = expired
	s.N += eaten * s.Inc
	s.Score += eaten
	s.Time = t.Time

	if r := t.Restart; r != nil {
		s.Over = false
		if r.Body != nil {
			s.Body = append([]core.Point(nil), r.Body...)
		}
		if r.ResetFood {
			s.Food = nil
			s.ExpiredFood = nil
		}
		if r.N > 0 {
			s.N = r.N
		}
	}

	return s
}
