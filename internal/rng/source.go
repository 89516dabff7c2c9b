// Package rng implements the uniform, exponential, gamma and Dirichlet
// samplers the discrete HMM's Gibbs resampler draws from. The source is
// explicit and seedable (never a process-wide global) so that an
// outer caller can reproduce a training run exactly, per spec.md's
// RNG-as-explicit-state design note.
package rng

import "math/rand/v2"

// Source is a seedable pseudo-random source. It owns its state
// exclusively; concurrent callers must serialize externally — the
// discrete HMM core is single-threaded cooperative by design.
type Source struct {
	r *rand.Rand
}

// New creates a Source whose draws are fully determined by seed: two
// Sources built from the same seed produce identical sequences.
func New(seed uint64) *Source {
	return &Source{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Uniform returns a sample strictly inside (0,1). Callers rely on both
// r>0 and 1-r>0 holding (e.g. Exponential's log(1-u)).
func (s *Source) Uniform() float64 {
	for {
		u := s.r.Float64() // [0,1)
		if u > 0 {
			return u
		}
	}
}
