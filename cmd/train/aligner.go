package main

import (
	"fmt"

	"github.com/hsryu/discretehmm/internal/hmm"
)

// Aligner produces a state alignment for one utterance's features
// given the current model. Composing frame_state_lattice(features)
// with monophone_cycle() and sampling a path through the result is the
// external sampler's job and explicitly out of scope per spec.md §1;
// this interface is the seam where that composition/sampler plugs in.
type Aligner interface {
	Align(model *hmm.DiscreteHMM, features []int) ([]int, error)
}

// ForcedAdvanceAligner is a deterministic stand-in aligner: it walks
// state 0..N-1 left to right, advancing by at most one state per frame
// on a fixed proportional schedule, so the training loop can be
// exercised end to end without a real lattice sampler. It produces
// acoustically meaningless but always-valid left-to-right alignments.
type ForcedAdvanceAligner struct{}

func (ForcedAdvanceAligner) Align(model *hmm.DiscreteHMM, features []int) ([]int, error) {
	n := model.NumStates()
	t := len(features)
	if t == 0 {
		return nil, fmt.Errorf("cmd/train: ForcedAdvanceAligner: empty utterance")
	}

	alignment := make([]int, t)
	state := 0
	for i := range alignment {
		alignment[i] = state
		if state < n-1 && (i+1)*n/t > state {
			state++
		}
	}
	return alignment, nil
}
