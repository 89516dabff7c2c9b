package wfst

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsryu/discretehmm/internal/hmm"
	"github.com/hsryu/discretehmm/internal/rng"
)

// spec.md §8 invariant 7.
func TestParseSample_NoEpsilons(t *testing.T) {
	g := NewGraph()
	s0 := g.AddState()
	s1 := g.AddState()
	s2 := g.AddState()
	g.SetStart(s0)
	g.AddArc(s0, Arc{ILabel: 3, Next: s1})
	g.AddArc(s1, Arc{ILabel: 6, Next: s2})
	g.SetFinal(s2, 0)

	assert.Equal(t, []int{2, 5}, ParseSample(g))
}

func TestParseSample_SkipsEpsilons(t *testing.T) {
	g := NewGraph()
	s0 := g.AddState()
	s1 := g.AddState()
	s2 := g.AddState()
	g.SetStart(s0)
	g.AddArc(s0, Arc{ILabel: Epsilon, Next: s1})
	g.AddArc(s1, Arc{ILabel: 4, Next: s2})
	g.SetFinal(s2, 0)

	assert.Equal(t, []int{3}, ParseSample(g))
}

func TestParseSample_EmptyPathAtFinalState(t *testing.T) {
	g := NewGraph()
	s0 := g.AddState()
	g.SetStart(s0)
	g.SetFinal(s0, 0)

	assert.Empty(t, ParseSample(g))
}

// Round trip: building a path from a monophone_cycle's entry and advance
// arcs and parsing it should recover exactly the HMM states traversed.
func TestParseSample_RoundTripThroughMonophoneCycle(t *testing.T) {
	model, err := hmm.New(hmm.Config{
		CodebookSize:    3,
		NumUnits:        1,
		NumUnitStates:   3,
		ObsPriorParam:   1,
		TransPriorParam: 1,
	}, rng.New(1))
	require.NoError(t, err)

	g, err := MonophoneCycle(model)
	require.NoError(t, err)

	// Hand-pick a linear path through the cycle: entry (state 0->1) then
	// the two advance arcs (second arc at each intermediate state) to
	// reach the final self-loop/exit state; the epsilon exit arc is left out.
	entry := g.Arcs(0)[0]
	assert.Equal(t, 1, entry.Next)

	s1AdvanceArc := g.Arcs(1)[1]
	s2AdvanceArc := g.Arcs(s1AdvanceArc.Next)[1]

	linear := NewGraph()
	a := linear.AddState()
	b := linear.AddState()
	c := linear.AddState()
	d := linear.AddState()
	linear.SetStart(a)
	linear.AddArc(a, Arc{ILabel: entry.ILabel, Next: b})
	linear.AddArc(b, Arc{ILabel: s1AdvanceArc.ILabel, Next: c})
	linear.AddArc(c, Arc{ILabel: s2AdvanceArc.ILabel, Next: d})
	linear.SetFinal(d, 0)

	assert.Equal(t, []int{0, 1, 2}, ParseSample(linear))
}
