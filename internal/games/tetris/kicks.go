package tetris

import "github.com/vovakirdan/mindgym/internal/core"

// kickKey selects the wall-kick row: piece dimension, current orientation,
// next orientation.
type kickKey struct {
	dim, from, to int
}

// kicks lists the offsets tried, in order, when a rotation collides.
// Offsets use board coordinates (positive Y is down).
//
// Example, S piece rotating right against an obstacle O:
//
//	org       (0,0)              (-1,0)
//	.xx        .x.                x..
//	xxO  ->    .xC  shift left -> xxO
//	O.O        ..C                OxO
var kicks = map[kickKey][]core.Point{
	{3, 0, 1}: {{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
	{3, 1, 0}: {{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
	{3, 1, 2}: {{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
	{3, 2, 1}: {{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
	{3, 2, 3}: {{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
	{3, 3, 2}: {{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
	{3, 3, 0}: {{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
	{3, 0, 3}: {{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},

	{4, 0, 1}: {{0, 0}, {-2, 0}, {1, 0}, {-2, -1}, {1, 2}},
	{4, 1, 0}: {{0, 0}, {2, 0}, {-1, 0}, {2, 1}, {-1, -2}},
	{4, 1, 2}: {{0, 0}, {-1, 0}, {2, 0}, {-1, 2}, {2, -1}},
	{4, 2, 1}: {{0, 0}, {1, 0}, {-2, 0}, {1, -2}, {-2, 1}},
	{4, 2, 3}: {{0, 0}, {2, 0}, {-1, 0}, {2, 1}, {-1, -2}},
	{4, 3, 2}: {{0, 0}, {-2, 0}, {1, 0}, {-2, -1}, {1, 2}},
	{4, 3, 0}: {{0, 0}, {1, 0}, {-2, 0}, {1, -2}, {-2, 1}},
	{4, 0, 3}: {{0, 0}, {-1, 0}, {2, 0}, {-1, 2}, {2, -1}},
}
