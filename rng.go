package segtremig

import (
	"math/rand"
	"time"
)

// RandSource is the single random primitive the core consumes: a nullary
// function returning a value in [0, 1). All call sites that need a
// strictly positive draw (to feed ln(u)) retry via drawNonZero instead of
// trusting the source to exclude zero.
type RandSource interface {
	Uniform() float64
}

// RandSourceFunc adapts a plain func() float64 to RandSource.
type RandSourceFunc func() float64

// Uniform implements RandSource.
func (f RandSourceFunc) Uniform() float64 { return f() }

// mathRandSource wraps a *rand.Rand, mirroring how bin/contagion/main.go
// seeds the global math/rand source from a -seed flag before running.
type mathRandSource struct {
	r *rand.Rand
}

// NewMathRandSource returns a RandSource backed by a seeded math/rand
// generator. Passing seed == 0 seeds from the current wall clock, the way
// the teacher CLI defaults -seed to time.Now().UTC().UnixNano().
func NewMathRandSource(seed int64) RandSource {
	if seed == 0 {
		seed = time.Now().UTC().UnixNano()
	}
	return &mathRandSource{r: rand.New(rand.NewSource(seed))}
}

// Uniform returns a value in [0, 1).
func (s *mathRandSource) Uniform() float64 {
	return s.r.Float64()
}

// drawNonZero draws from src until a strictly positive value is seen.
// Every call site in the reference simulator that feeds a draw to
// math.Log needs this guard (ran1() == 0.0 guards in re/cleftr/cinr and
// the migration/coalescent rate draws).
func drawNonZero(src RandSource) float64 {
	for {
		if u := src.Uniform(); u != 0.0 {
			return u
		}
	}
}
