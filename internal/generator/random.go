// Package generator produces arriving parties for the simulation engine. It
// provides a seeded uniform source, a stochastic arrival generator and a
// fixed arrival schedule, all of which satisfy the engine's interfaces.
package generator

import "golang.org/x/exp/rand"

// Random is a seeded PCG source. Two instances created with the same seed
// yield the same sequence.
type Random struct {
	rnd *rand.Rand
}

// NewRandom returns a Random seeded with seed.
func NewRandom(seed uint64) *Random {
	return &Random{rnd: rand.New(rand.NewSource(seed))}
}

// Float64 returns a sample in [0, 1).
func (r *Random) Float64() float64 { return r.rnd.Float64() }
