package snake

import (
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/mindgym/internal/core"
)

func TestDeterminism(t *testing.T) {
	// Two games with the same seed should stay identical
	r1 := core.NewRand(12345)
	r2 := core.NewRand(12345)
	s1 := Initial(DefaultInc)
	s2 := Initial(DefaultInc)

	now := time.UnixMilli(0)
	for i := 0; i < 200; i++ {
		now = now.Add(100 * time.Millisecond)
		if i == 20 {
			s1 = Reduce(s1, Move{Dir: Down}, r1)
			s2 = Reduce(s2, Move{Dir: Down}, r2)
		}
		s1 = Reduce(s1, Tick{Time: now}, r1)
		s2 = Reduce(s2, Tick{Time: now}, r2)
	}

	if !reflect.DeepEqual(s1, s2) {
		t.Errorf("states diverged:\n%+v\n%+v", s1, s2)
	}
}

func TestTickMovesAndWraps(t *testing.T) {
	rng := core.NewRand(1)
	s := Initial(DefaultInc)
	now := time.UnixMilli(500)

	s = Reduce(s, Tick{Time: now}, rng)
	expected := []core.Point{core.Pt(6, 5), core.Pt(5, 5)}
	if !reflect.DeepEqual(s.Body, expected) {
		t.Errorf("body = %v, expected %v", s.Body, expected)
	}
	if !s.Time.Equal(now) {
		t.Errorf("time = %v, expected %v", s.Time, now)
	}

	s.Body = []core.Point{core.Pt(11, 5)}
	s = Reduce(s, Tick{}, rng)
	if s.Head() != core.Pt(0, 5) {
		t.Errorf("head = %v, expected wrap to (0,5)", s.Head())
	}
}

func TestBodyTruncatedToLength(t *testing.T) {
	rng := core.NewRand(1)
	s := Initial(DefaultInc)
	for i := 0; i < 10; i++ {
		s = Reduce(s, Tick{}, rng)
	}
	if len(s.Body) != s.N {
		t.Errorf("body length = %d, expected %d", len(s.Body), s.N)
	}
}

func TestEatAtOldHead(t *testing.T) {
	s := Initial(DefaultInc)
	s.Food = []Food{{Point: StartPoint, Expires: 50}}

	next := Reduce(s, Tick{}, core.NewRand(7))

	if next.Score != 1 {
		t.Errorf("score = %d, expected 1", next.Score)
	}
	if next.N != DefaultLength+DefaultInc {
		t.Errorf("N = %d, expected %d", next.N, DefaultLength+DefaultInc)
	}
	if len(next.Food) != 1 || next.Food[0].Expires != FoodExpiry {
		t.Errorf("food = %v, expected one fresh item", next.Food)
	}
	if len(next.ExpiredFood) != 0 {
		t.Errorf("eaten food reported as expired: %v", next.ExpiredFood)
	}
	if s.Food[0].Expires != 50 {
		t.Error("Reduce modified the previous food")
	}
}

func TestFoodExpires(t *testing.T) {
	s := Initial(DefaultInc)
	s.Food = []Food{
		{Point: core.Pt(0, 0), Expires: 1},
		{Point: core.Pt(9, 9), Expires: 3},
		{Point: core.Pt(8, 8)},
	}

	next := Reduce(s, Tick{}, core.NewRand(7))

	if !reflect.DeepEqual(next.ExpiredFood, []core.Point{core.Pt(0, 0)}) {
		t.Errorf("expired = %v, expected [(0,0)]", next.ExpiredFood)
	}
	expected := []Food{
		{Point: core.Pt(9, 9), Expires: 2},
		{Point: core.Pt(8, 8)},
	}
	if !reflect.DeepEqual(next.Food, expected) {
		t.Errorf("food = %v, expected %v", next.Food, expected)
	}
}

func TestFreshFoodWhenNoneLeft(t *testing.T) {
	s := Initial(DefaultInc)
	s.Food = []Food{{Point: core.Pt(0, 0), Expires: 1}}

	next := Reduce(s, Tick{}, core.NewRand(3))
	if len(next.Food) != 1 || next.Food[0].Expires != FoodExpiry {
		t.Errorf("food = %v, expected one fresh item", next.Food)
	}
	f := next.Food[0]
	if f.X < 0 || f.X >= s.W || f.Y < 0 || f.Y >= s.H {
		t.Errorf("fresh food %v outside the grid", f.Point)
	}
}

func TestSelfIntersectionEndsGame(t *testing.T) {
	rng := core.NewRand(1)
	s := Initial(DefaultInc)
	s.Body = []core.Point{core.Pt(1, 1), core.Pt(2, 1), core.Pt(2, 2), core.Pt(1, 2), core.Pt(1, 1)}

	s = Reduce(s, Tick{}, rng)
	if !s.Over {
		t.Fatal("self-intersecting body should end the game")
	}

	if got := Reduce(s, Tick{Time: time.UnixMilli(9)}, rng); !reflect.DeepEqual(got, s) {
		t.Error("tick after game over should leave the state unchanged")
	}
	if got := Reduce(s, Move{Dir: Up}, rng); !reflect.DeepEqual(got, s) {
		t.Error("move after game over should leave the state unchanged")
	}

	restarted := Reduce(s, Tick{Restart: &Restart{
		Body:      []core.Point{StartPoint},
		ResetFood: true,
		N:         3,
	}}, rng)
	if restarted.Over {
		t.Error("restart should clear Over")
	}
	if !reflect.DeepEqual(restarted.Body, []core.Point{StartPoint}) {
		t.Errorf("body = %v, expected fresh body", restarted.Body)
	}
	if restarted.Food != nil || restarted.N != 3 {
		t.Errorf("restart food = %v N = %d, expected none and 3", restarted.Food, restarted.N)
	}
}

func TestRestartKeepsBody(t *testing.T) {
	s := Initial(DefaultInc)
	s.Body = []core.Point{core.Pt(5, 5), core.Pt(4, 5), core.Pt(3, 5)}
	s.N = 9

	rng := core.NewRand(1)
	next := Reduce(s, Tick{Restart: &Restart{N: 3}}, rng)
	expected := []core.Point{core.Pt(6, 5), core.Pt(5, 5), core.Pt(4, 5), core.Pt(3, 5)}
	if !reflect.DeepEqual(next.Body, expected) {
		t.Errorf("body = %v, expected stepped body %v", next.Body, expected)
	}
	if next.N != 3 {
		t.Errorf("N = %d, expected 3", next.N)
	}

	next = Reduce(next, Tick{}, rng)
	if len(next.Body) != 3 {
		t.Errorf("body length = %d, expected 3 after the next tick", len(next.Body))
	}
}

func TestMoveRejectsReversal(t *testing.T) {
	tests := []struct {
		name     string
		body     []core.Point
		dir      core.Point
		expected core.Point
	}{
		{"reverse", []core.Point{core.Pt(5, 5), core.Pt(4, 5)}, Left, Right},
		{"turn", []core.Point{core.Pt(5, 5), core.Pt(4, 5)}, Up, Up},
		{"reverse across edge", []core.Point{core.Pt(0, 5), core.Pt(11, 5)}, Left, Right},
		{"single segment", []core.Point{core.Pt(5, 5)}, Left, Left},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := Initial(DefaultInc)
			s.Body = tc.body
			got := Reduce(s, Move{Dir: tc.dir}, core.NewRand(1))
			if got.Dir != tc.expected {
				t.Errorf("dir = %v, expected %v", got.Dir, tc.expected)
			}
		})
	}
}
