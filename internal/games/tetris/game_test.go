package tetris

import (
	"reflect"
	"testing"
	"time"
)

// stubRand always picks the same shape and garbage probability.
type stubRand struct {
	i int
	f float64
}

func (r stubRand) Intn(n int) int    { return r.i % n }
func (r stubRand) Float64() float64 { return r.f }

var pickB = stubRand{i: 1}

func fullRow() []int {
	row := make([]int, Width)
	for x := range row {
		row[x] = 7
	}
	return row
}

func withPiece(s State, p Piece) State {
	s.Piece = &p
	return s
}

func TestEliminateRemovesFullRows(t *testing.T) {
	b := NewBoard()
	b[19][3] = 5
	b[20] = fullRow()
	b[21] = fullRow()

	out, removed := Eliminate(b)

	if !reflect.DeepEqual(removed, []int{20, 21}) {
		t.Errorf("removed = %v, expected [20 21]", removed)
	}
	if len(out) != Height {
		t.Fatalf("height = %d, expected %d", len(out), Height)
	}
	for y := 0; y < 2; y++ {
		for x, c := range out[y] {
			if c != Empty {
				t.Errorf("out[%d][%d] = %d, expected empty", y, x, c)
			}
		}
	}
	if out[21][3] != 5 {
		t.Errorf("partial row should shift to the bottom, got %v", out[21])
	}
	if b[20][0] != 7 {
		t.Error("Eliminate modified its input")
	}
}

func TestEliminateNoFullRows(t *testing.T) {
	b := NewBoard()
	b[21][0] = 3

	out, removed := Eliminate(b)
	if len(removed) != 0 {
		t.Errorf("removed = %v, expected none", removed)
	}
	if !reflect.DeepEqual(out, b) {
		t.Error("board without full rows should be returned unchanged")
	}
}

func TestHasOverlap(t *testing.T) {
	b := NewBoard()
	b[10][5] = 2

	tests := []struct {
		name     string
		p        Piece
		expected bool
	}{
		{"clear", B.Moved(0, 5), false},
		{"left wall", B.Moved(-5, 5), true},
		{"right wall", B.Moved(5, 5), true},
		{"floor", B.Moved(0, 21), true},
		{"settled cell", B.Moved(1, 9), true},
		{"empty cells may hang outside", T.Moved(0, 20), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := HasOverlap(b, tc.p); got != tc.expected {
				t.Errorf("HasOverlap() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestFindShadow(t *testing.T) {
	s := FindShadow(NewBoard(), B)
	if s.Y != Height-2 {
		t.Errorf("shadow Y = %d, expected %d", s.Y, Height-2)
	}
	if s.Cells[0][0] != Shadow {
		t.Errorf("shadow cell = %d, expected %d", s.Cells[0][0], Shadow)
	}
	if B.Cells[0][0] != 2 {
		t.Error("FindShadow recoloured the original piece")
	}
}

func TestRotateRightFullTurn(t *testing.T) {
	p := T
	for i := 0; i < 4; i++ {
		p = RotateRight(p)
	}
	if !reflect.DeepEqual(p.Cells, T.Cells) || p.R != T.R {
		t.Errorf("four right turns should restore the piece, got %v r=%d", p.Cells, p.R)
	}

	if q := RotateLeft(RotateRight(S)); !reflect.DeepEqual(q.Cells, S.Cells) || q.R != S.R {
		t.Error("RotateLeft should undo RotateRight")
	}
}

func TestTryRotateWallKick(t *testing.T) {
	// Vertical bar flush with the left wall.
	p := I.Moved(-6, 5)
	if HasOverlap(NewBoard(), p) {
		t.Fatal("start position should be clear")
	}

	got, ok := TryRotate(NewBoard(), p, Clockwise)
	if !ok {
		t.Fatal("rotation should succeed with a kick")
	}
	if got.X != 0 || got.R != 2 {
		t.Errorf("rotated piece at x=%d r=%d, expected x=0 r=2", got.X, got.R)
	}
}

func TestTryRotateSquareNeverRotates(t *testing.T) {
	if _, ok := TryRotate(NewBoard(), B, Clockwise); ok {
		t.Error("2×2 piece should not rotate")
	}
}

func TestFirstActionSpawns(t *testing.T) {
	s := Reduce(Initial(), Tick{}, pickB)
	if s.Piece == nil {
		t.Fatal("piece should spawn")
	}
	if s.Piece.X != SpawnX || s.Piece.Y != SpawnY {
		t.Errorf("spawn at (%d,%d), expected (%d,%d)", s.Piece.X, s.Piece.Y, SpawnX, SpawnY)
	}
	if s.Phase() != PhaseFalling {
		t.Errorf("phase = %s, expected falling", s.Phase())
	}
}

func TestDropSquareOnEmptyBoard(t *testing.T) {
	s := withPiece(Initial(), B)

	if rotated := Reduce(s, Rotate{}, pickB); !reflect.DeepEqual(rotated, s) {
		t.Error("rotating the square should leave the state unchanged")
	}

	s = Reduce(s, Drop{}, pickB)

	for _, y := range []int{Height - 2, Height - 1} {
		for _, x := range []int{SpawnX, SpawnX + 1} {
			if s.Board[y][x] != 2 {
				t.Errorf("board[%d][%d] = %d, expected 2", y, x, s.Board[y][x])
			}
		}
	}
	if s.Lines != 0 {
		t.Errorf("lines = %d, expected 0", s.Lines)
	}
	if s.Piece == nil || s.Piece.Y != SpawnY {
		t.Error("a new piece should spawn after locking")
	}
}

func TestDropClearsLines(t *testing.T) {
	s := Initial()
	for _, y := range []int{Height - 2, Height - 1} {
		s.Board[y] = fullRow()
		s.Board[y][SpawnX] = Empty
		s.Board[y][SpawnX+1] = Empty
	}
	s = withPiece(s, B)

	s = Reduce(s, Drop{}, pickB)
	if s.Lines != 2 {
		t.Errorf("lines = %d, expected 2", s.Lines)
	}
	for y, row := range s.Board {
		for x, c := range row {
			if c != Empty {
				t.Fatalf("board[%d][%d] = %d, expected empty board", y, x, c)
			}
		}
	}
}

func TestTickGraceAfterMove(t *testing.T) {
	s := withPiece(Initial(), B.Moved(0, Height-2))
	s.LastAction = LastMove

	s = Reduce(s, Tick{}, pickB)
	if s.Piece.Y != Height-2 || s.LastAction != LastTick {
		t.Fatalf("resting piece should get one grace tick, got y=%d last=%s", s.Piece.Y, s.LastAction)
	}
	if s.Board[Height-1][SpawnX] != Empty {
		t.Fatal("grace tick should not lock")
	}

	s = Reduce(s, Tick{}, pickB)
	if s.Board[Height-1][SpawnX] != 2 {
		t.Error("second tick should lock the piece")
	}
}

func TestTickFalls(t *testing.T) {
	s := withPiece(Initial(), T.Moved(0, 3))
	next := Reduce(s, Tick{}, pickB)
	if next.Piece.Y != 4 {
		t.Errorf("piece y = %d, expected 4", next.Piece.Y)
	}
	if s.Piece.Y != 3 {
		t.Error("Reduce modified the previous state")
	}
}

func TestMoveRejectedOnOverlap(t *testing.T) {
	s := withPiece(Initial(), B.Moved(-4, 5))
	if got := Reduce(s, Move{DX: -1}, pickB); !reflect.DeepEqual(got, s) {
		t.Error("move into the wall should leave the state unchanged")
	}

	got := Reduce(s, Move{DX: 1}, pickB)
	if got.Piece.X != 1 || got.LastAction != LastMove {
		t.Errorf("move = x %d last %s, expected x 1 last move", got.Piece.X, got.LastAction)
	}
}

func TestLastActionRecorded(t *testing.T) {
	tests := []struct {
		name     string
		action   Action
		expected LastAction
	}{
		{"tick", Tick{}, LastTick},
		{"move", Move{DX: 1}, LastMove},
		{"rotate", Rotate{}, LastRotate},
		{"drop spawns", Drop{}, LastTick},
		{"punish", Punish{Lines: 1}, LastPunish},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := withPiece(Initial(), T.Moved(0, 3))
			s.LastAction = LastMove
			if tc.expected == LastMove {
				s.LastAction = LastTick
			}

			if got := Reduce(s, tc.action, pickB).LastAction; got != tc.expected {
				t.Errorf("LastAction = %s, expected %s", got, tc.expected)
			}
		})
	}
}

func TestPunish(t *testing.T) {
	s := withPiece(Initial(), T.Moved(0, 2))
	s.Board[Height-1][0] = 6

	got := Reduce(s, Punish{Lines: 2}, stubRand{f: 0})

	if len(got.Board) != Height {
		t.Fatalf("height = %d, expected %d", len(got.Board), Height)
	}
	if got.Board[Height-3][0] != 6 {
		t.Error("settled rows should shift up")
	}
	for _, y := range []int{Height - 2, Height - 1} {
		for x, c := range got.Board[y] {
			if c != garbageCell {
				t.Errorf("garbage[%d][%d] = %d, expected %d", y, x, c, garbageCell)
			}
		}
	}
	if s.Board[Height-1][0] != 6 || s.Board[Height-2][0] != Empty {
		t.Error("Punish modified the previous board")
	}

	sparse := Reduce(s, Punish{Lines: 1}, stubRand{f: 0.9})
	for x, c := range sparse.Board[Height-1] {
		if c != Empty {
			t.Errorf("garbage[%d] = %d, expected empty above fill probability", x, c)
		}
	}
}

func TestOverIgnoresActionsExceptReset(t *testing.T) {
	s := Initial()
	for y := 0; y < 4; y++ {
		s.Board[y][SpawnX] = 3
	}
	s = withPiece(s, B)

	s = Reduce(s, Tick{}, pickB)
	if !s.Over {
		t.Fatal("overlapping piece near the top should end the game")
	}

	for _, a := range []Action{Tick{}, Move{DX: 1}, Rotate{}, Drop{}, Punish{Lines: 1}} {
		if got := Reduce(s, a, pickB); !reflect.DeepEqual(got, s) {
			t.Errorf("%T after game over changed the state", a)
		}
	}

	if got := Reduce(s, Reset{}, pickB); got.Over || got.Piece != nil || got.Lines != 0 {
		t.Error("Reset should restore the initial state")
	}
}

func TestDelay(t *testing.T) {
	base := time.Second
	if got := Delay(base, 0); got < 720*time.Millisecond || got > 722*time.Millisecond {
		t.Errorf("Delay(1s, 0) = %v, expected about 721ms", got)
	}

	prev := Delay(base, 0)
	for lines := 1; lines <= 20; lines++ {
		d := Delay(base, lines)
		if d >= prev {
			t.Fatalf("Delay should shrink with lines: %d lines gave %v after %v", lines, d, prev)
		}
		prev = d
	}
}
