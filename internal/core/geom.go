// Package core provides fundamental types shared by every training game.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Point is a cell coordinate on a game grid. It doubles as a direction
// vector when used as a heading or an offset.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns the component-wise sum of two points.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Wrap maps the point onto a w×h torus.
func (p Point) Wrap(w, h int) Point {
	return Point{X: Mod(p.X, w), Y: Mod(p.Y, h)}
}

// Mod returns x modulo n, always in [0, n) for positive n.
// Go's % keeps the sign of the dividend, which breaks wraparound.
func Mod(x, n int) int {
	if n <= 0 {
		return 0
	}
	m := x % n
	if m < 0 {
		return m + n
	}
	return m
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
