// Package hmm implements the Bayesian left-to-right discrete hidden
// Markov model described in spec.md: Dirichlet-prior count tables, a
// currently-sampled parameter block, and the Gibbs-style resampler that
// draws fresh parameters from the Dirichlet posterior. It is the
// probabilistic state model at the center of the acoustic-unit
// discovery pipeline; WFST construction lives in internal/wfst.
package hmm

import "github.com/hsryu/discretehmm/internal/rng"

// Config holds the construction parameters enumerated in spec.md §6.
type Config struct {
	CodebookSize    int     // K, positive
	NumUnits        int     // U, positive
	NumUnitStates   int     // S, positive; default 3
	ObsPriorParam   float64 // alpha_obs, default 1.0
	TransPriorParam float64 // alpha_trans, default 1.0
}

// WithDefaults fills in NumUnitStates/ObsPriorParam/TransPriorParam
// with their spec-mandated defaults wherever left at the zero value.
func (c Config) WithDefaults() Config {
	if c.NumUnitStates == 0 {
		c.NumUnitStates = 3
	}
	if c.ObsPriorParam == 0 {
		c.ObsPriorParam = 1.0
	}
	if c.TransPriorParam == 0 {
		c.TransPriorParam = 1.0
	}
	return c
}

// DiscreteHMM is a left-to-right discrete HMM whose emission and
// transition distributions are drawn from Dirichlet posteriors over
// per-state counts. It owns its RNG source exclusively; see the
// concurrency notes in spec.md §5.
type DiscreteHMM struct {
	cfg    Config
	counts *counts
	params *params
	src    *rng.Source
}

// New constructs a DiscreteHMM and draws its initial parameters from
// the prior (counts start at zero, so the posterior equals the prior).
func New(cfg Config, src *rng.Source) (*DiscreteHMM, error) {
	if cfg.CodebookSize <= 0 {
		return nil, invalidParameter("New", "codebook_size must be positive")
	}
	if cfg.NumUnits <= 0 {
		return nil, invalidParameter("New", "num_units must be positive")
	}
	if cfg.NumUnitStates <= 0 {
		return nil, invalidParameter("New", "num_unit_states must be positive")
	}
	if cfg.ObsPriorParam < 0 {
		return nil, invalidParameter("New", "obs_prior_param must be non-negative")
	}
	if cfg.TransPriorParam < 0 {
		return nil, invalidParameter("New", "trans_prior_param must be non-negative")
	}
	if src == nil {
		return nil, invalidParameter("New", "rng source must not be nil")
	}

	n := cfg.NumUnits * cfg.NumUnitStates
	h := &DiscreteHMM{
		cfg:    cfg,
		counts: newCounts(n, cfg.CodebookSize, cfg.ObsPriorParam, cfg.TransPriorParam),
		params: newParams(n),
		src:    src,
	}
	if err := h.ResampleObs(); err != nil {
		return nil, err
	}
	if err := h.ResampleTrans(); err != nil {
		return nil, err
	}
	return h, nil
}

// NumStates returns N = NumUnits*NumUnitStates.
func (h *DiscreteHMM) NumStates() int { return len(h.params.obsProb) }

// CodebookSize returns K.
func (h *DiscreteHMM) CodebookSize() int { return h.cfg.CodebookSize }

// NumUnits returns U.
func (h *DiscreteHMM) NumUnits() int { return h.cfg.NumUnits }

// NumUnitStates returns S.
func (h *DiscreteHMM) NumUnitStates() int { return h.cfg.NumUnitStates }

// ResampleObs draws fresh emission probabilities for every state from
// their Dirichlet posterior (obs_prior + obs_count).
func (h *DiscreteHMM) ResampleObs() error {
	return h.params.resampleObs(h.counts, h.src)
}

// ResampleTrans draws fresh transition probabilities for every state
// from their Dirichlet posterior (trans_prior + trans_count).
func (h *DiscreteHMM) ResampleTrans() error {
	return h.params.resampleTrans(h.counts, h.src)
}

// StateProb returns the currently sampled P(code | stateID).
func (h *DiscreteHMM) StateProb(stateID, code int) (float64, error) {
	if err := h.checkState(stateID); err != nil {
		return 0, err
	}
	if code < 0 || code >= h.cfg.CodebookSize {
		return 0, invalidParameter("StateProb", "code out of range")
	}
	return h.params.obsProb[stateID][code], nil
}

// TransProb returns the currently sampled transition probability out of
// stateID: dest=0 is the self-loop, dest=1 is the advance.
func (h *DiscreteHMM) TransProb(stateID, dest int) (float64, error) {
	if err := h.checkState(stateID); err != nil {
		return 0, err
	}
	if dest != 0 && dest != 1 {
		return 0, invalidParameter("TransProb", "dest must be 0 or 1")
	}
	return h.params.transProb[stateID][dest], nil
}

// AddObsCount adds n to obs_count[stateID][code].
func (h *DiscreteHMM) AddObsCount(stateID, code int, n float64) error {
	if err := h.checkState(stateID); err != nil {
		return err
	}
	if code < 0 || code >= h.cfg.CodebookSize {
		return invalidParameter("AddObsCount", "code out of range")
	}
	h.counts.addObs(stateID, code, n)
	return nil
}

// RemoveObsCount subtracts n from obs_count[stateID][code].
func (h *DiscreteHMM) RemoveObsCount(stateID, code int, n float64) error {
	return h.AddObsCount(stateID, code, -n)
}

// AddTransCount adds n to trans_count[stateID][dest].
func (h *DiscreteHMM) AddTransCount(stateID, dest int, n float64) error {
	if err := h.checkState(stateID); err != nil {
		return err
	}
	if dest != 0 && dest != 1 {
		return invalidParameter("AddTransCount", "dest must be 0 or 1")
	}
	h.counts.addTrans(stateID, dest, n)
	return nil
}

// RemoveTransCount subtracts n from trans_count[stateID][dest].
func (h *DiscreteHMM) RemoveTransCount(stateID, dest int, n float64) error {
	return h.AddTransCount(stateID, dest, -n)
}

// AddSampleCounts absorbs alignment/features into the count tables
// (sign=+1) per spec.md §4.2's apply algorithm. It returns the number
// of frames processed.
func (h *DiscreteHMM) AddSampleCounts(alignment, features []int) (int, error) {
	return h.counts.apply(alignment, features, h.cfg.NumUnitStates, 1)
}

// RemoveSampleCounts reverses a prior AddSampleCounts call (sign=-1).
func (h *DiscreteHMM) RemoveSampleCounts(alignment, features []int) (int, error) {
	return h.counts.apply(alignment, features, h.cfg.NumUnitStates, -1)
}

func (h *DiscreteHMM) checkState(stateID int) error {
	if stateID < 0 || stateID >= h.NumStates() {
		return invalidParameter("checkState", "state id out of range")
	}
	return nil
}
