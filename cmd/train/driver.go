package main

import (
	"fmt"

	"github.com/hsryu/discretehmm/internal/hmm"
	"github.com/hsryu/discretehmm/internal/monitor"
	"github.com/hsryu/discretehmm/internal/wfst"
)

// Driver sequences training iterations in the order spec.md §5
// requires: remove old alignment counts, resample parameters (every
// resampleEvery utterances), rebuild the WFSTs for the next iteration,
// then add the utterance's freshly sampled alignment counts.
type Driver struct {
	model         *hmm.DiscreteHMM
	aligner       Aligner
	resampleEvery int
	hub           *monitor.Hub

	prevAlignment map[string][]int
	prevFeatures  map[string][]int
	iteration     int
}

// NewDriver wires a Driver around model. hub may be nil to disable
// event broadcasting.
func NewDriver(model *hmm.DiscreteHMM, aligner Aligner, resampleEvery int, hub *monitor.Hub) *Driver {
	return &Driver{
		model:         model,
		aligner:       aligner,
		resampleEvery: resampleEvery,
		hub:           hub,
		prevAlignment: make(map[string][]int),
		prevFeatures:  make(map[string][]int),
	}
}

// Step runs one utterance through a single training iteration.
func (d *Driver) Step(utteranceID string, features []int) error {
	d.iteration++

	if prev, ok := d.prevAlignment[utteranceID]; ok {
		if _, err := d.model.RemoveSampleCounts(prev, d.prevFeatures[utteranceID]); err != nil {
			return fmt.Errorf("cmd/train: remove %s: %w", utteranceID, err)
		}
	}

	if d.iteration%d.resampleEvery == 0 {
		if err := d.model.ResampleObs(); err != nil {
			return fmt.Errorf("cmd/train: resample obs: %w", err)
		}
		if err := d.model.ResampleTrans(); err != nil {
			return fmt.Errorf("cmd/train: resample trans: %w", err)
		}
		d.broadcast(monitor.Event{Iteration: d.iteration, Phase: monitor.PhaseResample})
	}

	if _, err := wfst.FrameStateLattice(d.model, features); err != nil {
		return fmt.Errorf("cmd/train: rebuild frame state lattice for %s: %w", utteranceID, err)
	}
	if _, err := wfst.MonophoneCycle(d.model); err != nil {
		return fmt.Errorf("cmd/train: rebuild monophone cycle: %w", err)
	}

	alignment, err := d.aligner.Align(d.model, features)
	if err != nil {
		return fmt.Errorf("cmd/train: align %s: %w", utteranceID, err)
	}
	if _, err := d.model.AddSampleCounts(alignment, features); err != nil {
		return fmt.Errorf("cmd/train: add %s: %w", utteranceID, err)
	}

	d.prevAlignment[utteranceID] = alignment
	d.prevFeatures[utteranceID] = features

	d.broadcast(monitor.Event{
		Iteration:    d.iteration,
		Utterance:    utteranceID,
		AlignmentLen: len(alignment),
		Phase:        monitor.PhaseUtterance,
	})
	return nil
}

func (d *Driver) broadcast(ev monitor.Event) {
	if d.hub != nil {
		d.hub.Broadcast(ev)
	}
}
