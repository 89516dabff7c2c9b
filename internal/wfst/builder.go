package wfst

import (
	"fmt"

	"github.com/hsryu/discretehmm/internal/hmm"
)

// toHMMState converts the hmm.StateID arithmetic into a plain int, so
// builders below can keep using it as an array index.
func toHMMState(id hmm.StateID) int { return int(id) }

// FrameStateLattice builds the per-frame state emission lattice for a
// feature sequence, per spec.md §4.4: T+1 states for T=len(features),
// state 0 the start and state T the (only) final state at weight 0,
// with an arc t->t+1 for every HMM state i labeled (i+1,i+1) and
// weighted -ln(P(features[t] | i)). An arc whose probability is zero is
// dropped by AddArc.
func FrameStateLattice(model *hmm.DiscreteHMM, features []int) (*Graph, error) {
	g := NewGraph()
	g.AddState()
	g.SetStart(0)
	for range features {
		g.AddState()
	}
	g.SetFinal(len(features), 0)

	n := model.NumStates()
	for t, code := range features {
		for i := 0; i < n; i++ {
			p, err := model.StateProb(i, code)
			if err != nil {
				return nil, fmt.Errorf("frame state lattice: frame %d state %d: %w", t, i, err)
			}
			g.AddArc(t, Arc{ILabel: i + 1, OLabel: i + 1, Weight: NegLogProb(p), Next: t + 1})
		}
	}
	return g, nil
}

// MonophoneCycle builds the recognition graph spec.md §4.4 calls the
// monophone cycle: a single hub state 0 (both start and final) with one
// spoke per unit. Each spoke is the unit's own left-to-right HMM laid
// out as a chain of self-loop/advance arc pairs, entered from the hub
// with an epsilon-weight arc carrying the unit's output label (u+2) and
// exited back to the hub on an input-epsilon arc weighted by the last
// state's advance probability.
func MonophoneCycle(model *hmm.DiscreteHMM) (*Graph, error) {
	g := NewGraph()
	g.AddState()
	g.SetStart(0)
	g.SetFinal(0, 0)

	s := model.NumUnitStates()
	for u := 0; u < model.NumUnits(); u++ {
		hmmState := toHMMState(hmm.NewStateID(u, 0, s))
		entry := g.AddState()
		g.AddArc(0, Arc{ILabel: hmmState + 1, OLabel: u + 2, Weight: 0, Next: entry})

		cur := entry
		for i := 0; i < s-1; i++ {
			selfP, err := model.TransProb(hmmState, 0)
			if err != nil {
				return nil, fmt.Errorf("monophone cycle: unit %d state %d: %w", u, i, err)
			}
			advP, err := model.TransProb(hmmState, 1)
			if err != nil {
				return nil, fmt.Errorf("monophone cycle: unit %d state %d: %w", u, i, err)
			}

			g.AddArc(cur, Arc{ILabel: hmmState + 1, OLabel: 0, Weight: NegLogProb(selfP), Next: cur})
			next := g.AddState()
			g.AddArc(cur, Arc{ILabel: hmmState + 2, OLabel: 0, Weight: NegLogProb(advP), Next: next})

			hmmState++
			cur = next
		}

		selfP, err := model.TransProb(hmmState, 0)
		if err != nil {
			return nil, fmt.Errorf("monophone cycle: unit %d final state: %w", u, err)
		}
		exitP, err := model.TransProb(hmmState, 1)
		if err != nil {
			return nil, fmt.Errorf("monophone cycle: unit %d final state: %w", u, err)
		}
		g.AddArc(cur, Arc{ILabel: hmmState + 1, OLabel: 0, Weight: NegLogProb(selfP), Next: cur})
		g.AddArc(cur, Arc{ILabel: Epsilon, OLabel: 0, Weight: NegLogProb(exitP), Next: 0})
	}
	return g, nil
}
