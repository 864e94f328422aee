package tetris

import "github.com/vovakirdan/mindgym/internal/core"

// Cell values on the board. 1–7 are piece colour ids.
const (
	Empty  = 0
	Shadow = 8
)

// Spawn offset for every new piece.
const (
	SpawnX = 4
	SpawnY = 0
)

// Piece is a shape matrix placed on the board. Cells are shared between
// copies and must never be mutated; rotation builds a new matrix.
type Piece struct {
	X, Y  int
	R     int     // Orientation, 0..3
	Cells [][]int // Square matrix, non-zero cells are solid
}

// Dim returns the side length of the shape matrix.
func (p Piece) Dim() int {
	return len(p.Cells)
}

// Moved returns the piece translated by (dx, dy).
func (p Piece) Moved(dx, dy int) Piece {
	p.X += dx
	p.Y += dy
	return p
}

// Color returns the colour id of the piece's solid cells.
func (p Piece) Color() int {
	for _, row := range p.Cells {
		for _, c := range row {
			if c != Empty {
				return c
			}
		}
	}
	return Empty
}

func shape(r int, cells ...[]int) Piece {
	return Piece{X: SpawnX, Y: SpawnY, R: r, Cells: cells}
}

// The seven shapes. I starts in orientation 1 so that its vertical bar
// rotates with the 4×4 kick rows.
var (
	I = shape(1,
		[]int{0, 0, 1, 0},
		[]int{0, 0, 1, 0},
		[]int{0, 0, 1, 0},
		[]int{0, 0, 1, 0},
	)
	B = shape(0,
		[]int{2, 2},
		[]int{2, 2},
	)
	T = shape(0,
		[]int{0, 3, 0},
		[]int{3, 3, 3},
		[]int{0, 0, 0},
	)
	S = shape(0,
		[]int{0, 4, 4},
		[]int{4, 4, 0},
		[]int{0, 0, 0},
	)
	Z = shape(0,
		[]int{5, 5, 0},
		[]int{0, 5, 5},
		[]int{0, 0, 0},
	)
	L = shape(0,
		[]int{0, 0, 6},
		[]int{6, 6, 6},
		[]int{0, 0, 0},
	)
	J = shape(0,
		[]int{7, 0, 0},
		[]int{7, 7, 7},
		[]int{0, 0, 0},
	)
)

// Shapes is the fixed spawn set, indexed uniformly at random.
var Shapes = [...]Piece{I, B, T, S, Z, L, J}

// RandomPiece picks a shape uniformly at the spawn offset.
func RandomPiece(rng core.Rand) Piece {
	return Shapes[rng.Intn(len(Shapes))]
}
