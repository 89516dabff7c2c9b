package hmm

import "github.com/hsryu/discretehmm/internal/rng"

// params holds the currently sampled emission and transition
// probability vectors per state.
type params struct {
	obsProb   [][]float64
	transProb [][]float64
}

func newParams(n int) *params {
	return &params{
		obsProb:   make([][]float64, n),
		transProb: make([][]float64, n),
	}
}

// resampleObs draws obsProb[i] ~ Dirichlet(obsPrior[i]+obsCount[i]) for
// every state. The whole set of states is resampled into a fresh slice
// first and only swapped in once every draw succeeds, so a failure
// leaves the previous parameters untouched rather than half-updated.
func (p *params) resampleObs(c *counts, src *rng.Source) error {
	next := make([][]float64, len(p.obsProb))
	for i := range next {
		probs, err := src.Dirichlet(addVectors(c.obsPrior[i], c.obsCount[i]))
		if err != nil {
			return err
		}
		next[i] = probs
	}
	p.obsProb = next
	return nil
}

// resampleTrans draws transProb[i] ~ Dirichlet(transPrior[i]+transCount[i])
// for every state, with the same all-or-nothing swap as resampleObs.
func (p *params) resampleTrans(c *counts, src *rng.Source) error {
	next := make([][]float64, len(p.transProb))
	for i := range next {
		probs, err := src.Dirichlet(addVectors(c.transPrior[i], c.transCount[i]))
		if err != nil {
			return err
		}
		next[i] = probs
	}
	p.transProb = next
	return nil
}

func addVectors(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] + b[i]
	}
	return out
}
