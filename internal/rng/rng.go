// Package rng provides the seedable pseudo-random source the simulator core
// consumes for latency-matrix construction and randomized client commands.
package rng

import "math/rand"

// Source is a seedable uniform generator. The core depends only on this
// interface; it never reaches for math/rand directly outside this package.
type Source interface {
	// Intn returns a uniform pseudo-random int in [0, n). Panics if n <= 0.
	Intn(n int) int
	// Bool returns a uniform pseudo-random boolean.
	Bool() bool
}

type source struct {
	r *rand.Rand
}

// New returns a Source seeded deterministically from seed, or from the
// runtime's default entropy source when seed is nil.
func New(seed *uint64) Source {
	if seed == nil {
		return &source{r: rand.New(rand.NewSource(rand.Int63()))}
	}
	return &source{r: rand.New(rand.NewSource(int64(*seed)))}
}

func (s *source) Intn(n int) int {
	return s.r.Intn(n)
}

func (s *source) Bool() bool {
	return s.r.Intn(2) == 1
}
