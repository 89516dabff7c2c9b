package hmm

import (
	"reflect"
	"testing"

	"pgregory.net/rapid"

	"github.com/hsryu/discretehmm/internal/rng"
)

// genAlignment draws a random but always-valid left-to-right alignment:
// a sequence of unit visits, each holding at every in-unit state for a
// random number of self-loop frames before advancing.
func genAlignment(t *rapid.T, numUnits, numUnitStates int) []int {
	numSegments := rapid.IntRange(1, 5).Draw(t, "numSegments")
	var alignment []int
	for seg := 0; seg < numSegments; seg++ {
		unit := rapid.IntRange(0, numUnits-1).Draw(t, "unit")
		for s := 0; s < numUnitStates; s++ {
			state := unit*numUnitStates + s
			repeats := rapid.IntRange(1, 3).Draw(t, "repeats")
			for r := 0; r < repeats; r++ {
				alignment = append(alignment, state)
			}
		}
	}
	return alignment
}

func cloneMatrix(m [][]float64) [][]float64 {
	out := make([][]float64, len(m))
	for i, row := range m {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

// TestAddRemoveSampleCounts_Symmetry is spec.md §8 invariant 1: for any
// sequence of add/remove operations on the same (alignment,features),
// the count tables return element-wise to their pre-add values.
func TestAddRemoveSampleCounts_Symmetry(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		numUnits := rapid.IntRange(1, 3).Draw(t, "numUnits")
		numUnitStates := rapid.IntRange(1, 4).Draw(t, "numUnitStates")
		k := rapid.IntRange(1, 5).Draw(t, "k")

		h, err := New(Config{
			CodebookSize:    k,
			NumUnits:        numUnits,
			NumUnitStates:   numUnitStates,
			ObsPriorParam:   1,
			TransPriorParam: 1,
		}, rng.New(1))
		if err != nil {
			t.Fatalf("New: %v", err)
		}

		alignment := genAlignment(t, numUnits, numUnitStates)
		features := make([]int, len(alignment))
		for i := range features {
			features[i] = rapid.IntRange(0, k-1).Draw(t, "feature")
		}

		beforeObs := cloneMatrix(h.counts.obsCount)
		beforeTrans := cloneMatrix(h.counts.transCount)

		if _, err := h.AddSampleCounts(alignment, features); err != nil {
			t.Fatalf("AddSampleCounts: %v", err)
		}
		if _, err := h.RemoveSampleCounts(alignment, features); err != nil {
			t.Fatalf("RemoveSampleCounts: %v", err)
		}

		if !reflect.DeepEqual(beforeObs, h.counts.obsCount) {
			t.Fatalf("obs counts did not return to baseline: before=%v after=%v", beforeObs, h.counts.obsCount)
		}
		if !reflect.DeepEqual(beforeTrans, h.counts.transCount) {
			t.Fatalf("trans counts did not return to baseline: before=%v after=%v", beforeTrans, h.counts.transCount)
		}
	})
}

// TestResample_AlwaysValidSimplex is spec.md §8 invariant 2, exercised
// against randomly accumulated counts instead of the zero baseline.
func TestResample_AlwaysValidSimplex(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		numUnits := rapid.IntRange(1, 3).Draw(t, "numUnits")
		numUnitStates := rapid.IntRange(1, 4).Draw(t, "numUnitStates")
		k := rapid.IntRange(1, 5).Draw(t, "k")

		h, err := New(Config{
			CodebookSize:    k,
			NumUnits:        numUnits,
			NumUnitStates:   numUnitStates,
			ObsPriorParam:   1,
			TransPriorParam: 1,
		}, rng.New(1))
		if err != nil {
			t.Fatalf("New: %v", err)
		}

		alignment := genAlignment(t, numUnits, numUnitStates)
		features := make([]int, len(alignment))
		for i := range features {
			features[i] = rapid.IntRange(0, k-1).Draw(t, "feature")
		}
		if _, err := h.AddSampleCounts(alignment, features); err != nil {
			t.Fatalf("AddSampleCounts: %v", err)
		}
		if err := h.ResampleObs(); err != nil {
			t.Fatalf("ResampleObs: %v", err)
		}
		if err := h.ResampleTrans(); err != nil {
			t.Fatalf("ResampleTrans: %v", err)
		}

		for i := 0; i < h.NumStates(); i++ {
			var sum float64
			for c := 0; c < k; c++ {
				p, err := h.StateProb(i, c)
				if err != nil {
					t.Fatalf("StateProb: %v", err)
				}
				if p < 0 || p > 1 {
					t.Fatalf("obs_prob[%d][%d] = %v out of [0,1]", i, c, p)
				}
				sum += p
			}
			if sum < 1-1e-9 || sum > 1+1e-9 {
				t.Fatalf("obs_prob[%d] sums to %v, want 1", i, sum)
			}

			var transSum float64
			for d := 0; d < 2; d++ {
				p, err := h.TransProb(i, d)
				if err != nil {
					t.Fatalf("TransProb: %v", err)
				}
				if p < 0 || p > 1 {
					t.Fatalf("trans_prob[%d][%d] = %v out of [0,1]", i, d, p)
				}
				transSum += p
			}
			if transSum < 1-1e-9 || transSum > 1+1e-9 {
				t.Fatalf("trans_prob[%d] sums to %v, want 1", i, transSum)
			}
		}
	})
}
