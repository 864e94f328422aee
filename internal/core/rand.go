package core

import (
	"math/rand"
	"time"
)

// Rand is the random source threaded through every reducer.
// *rand.Rand satisfies it; tests pass a seeded generator.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// NewRand returns a generator for the given seed.
// Seed 0 means "seed from the wall clock" for gameplay variety.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
