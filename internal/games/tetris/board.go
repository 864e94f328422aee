package tetris

import "slices"

// Board dimensions.
const (
	Width  = 10
	Height = 22
)

// Board is a grid of cell values indexed [row][column]. Boards are treated
// as immutable; every operation returns a fresh one and leaves rows of the
// input untouched.
type Board [][]int

// NewBoard returns an empty board.
func NewBoard() Board {
	b := make(Board, Height)
	for y := range b {
		b[y] = make([]int, Width)
	}
	return b
}

// Turn is a rotation direction.
type Turn int

const (
	Clockwise Turn = iota
	CounterClockwise
)

// HasOverlap reports whether any solid cell of p lies outside the board or
// on a settled cell.
func HasOverlap(b Board, p Piece) bool {
	for dy, row := range p.Cells {
		for dx, c := range row {
			if c == Empty {
				continue
			}
			x, y := p.X+dx, p.Y+dy
			if y < 0 || y >= len(b) || x < 0 || x >= len(b[y]) {
				return true
			}
			if b[y][x] > Empty {
				return true
			}
		}
	}
	return false
}

// FindShadow returns the piece moved to the lowest row it can reach by
// falling straight down, recoloured with the Shadow marker.
func FindShadow(b Board, p Piece) Piece {
	s := p
	for !HasOverlap(b, s) && s.Y <= len(b) {
		s.Y++
	}
	s.Y--

	cells := make([][]int, len(p.Cells))
	for y, row := range p.Cells {
		cells[y] = make([]int, len(row))
		for x, c := range row {
			if c != Empty {
				cells[y][x] = Shadow
			}
		}
	}
	s.Cells = cells
	return s
}

// Merge overlays pieces onto the board. Settled cells win over piece cells,
// and earlier pieces win over later ones.
func Merge(b Board, pieces ...Piece) Board {
	out := make(Board, len(b))
	for y := range b {
		out[y] = slices.Clone(b[y])
	}
	for _, p := range pieces {
		for dy, row := range p.Cells {
			for dx, c := range row {
				x, y := p.X+dx, p.Y+dy
				if c == Empty || y < 0 || y >= len(out) || x < 0 || x >= len(out[y]) {
					continue
				}
				if out[y][x] == Empty {
					out[y][x] = c
				}
			}
		}
	}
	return out
}

// Eliminate removes every full row and prepends the same number of empty
// rows. It returns the new board and the indices of the removed rows. When
// no row is full the input board is returned as is.
func Eliminate(b Board) (Board, []int) {
	var removed []int
	kept := make(Board, 0, len(b))
	for y, row := range b {
		if isFull(row) {
			removed = append(removed, y)
			continue
		}
		kept = append(kept, row)
	}
	if len(removed) == 0 {
		return b, nil
	}

	out := make(Board, 0, len(b))
	for range removed {
		out = append(out, make([]int, len(b[0])))
	}
	return append(out, kept...), removed
}

func isFull(row []int) bool {
	for _, c := range row {
		if c == Empty {
			return false
		}
	}
	return true
}

// RotateRight turns the piece a quarter clockwise in place on its matrix.
func RotateRight(p Piece) Piece {
	d := p.Dim()
	cells := make([][]int, d)
	for y := range cells {
		cells[y] = make([]int, d)
		for x := range cells[y] {
			cells[y][x] = p.Cells[d-x-1][y]
		}
	}
	p.Cells = cells
	p.R = (p.R + 1) % 4
	return p
}

// RotateLeft turns the piece a quarter counter-clockwise.
func RotateLeft(p Piece) Piece {
	d := p.Dim()
	cells := make([][]int, d)
	for y := range cells {
		cells[y] = make([]int, d)
		for x := range cells[y] {
			cells[y][x] = p.Cells[x][d-y-1]
		}
	}
	p.Cells = cells
	p.R = (p.R + 3) % 4
	return p
}

// TryRotate rotates p and applies the first wall-kick offset that leaves it
// clear of the board. It reports false when the piece cannot rotate (2×2
// pieces never do) or every offset collides.
func TryRotate(b Board, p Piece, dir Turn) (Piece, bool) {
	d := p.Dim()
	if d < 3 || d > 4 {
		return p, false
	}

	var r Piece
	if dir == CounterClockwise {
		r = RotateLeft(p)
	} else {
		r = RotateRight(p)
	}

	for _, off := range kicks[kickKey{dim: d, from: p.R, to: r.R}] {
		candidate := r.Moved(off.X, off.Y)
		if !HasOverlap(b, candidate) {
			return candidate, true
		}
	}
	return p, false
}
