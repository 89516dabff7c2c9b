package rng

import (
	"math"
	"testing"

	"pgregory.net/rapid"
)

func TestDirichlet_RejectsNegativeAndZeroSum(t *testing.T) {
	s := New(1)
	if _, err := s.Dirichlet([]float64{1, -1}); err == nil {
		t.Error("expected error for negative alpha")
	}
	if _, err := s.Dirichlet([]float64{0, 0, 0}); err == nil {
		t.Error("expected error for all-zero alpha")
	}
	if _, err := s.Dirichlet(nil); err == nil {
		t.Error("expected error for empty alpha")
	}
}

func TestDirichlet_ZeroEntryStaysZero(t *testing.T) {
	s := New(3)
	p, err := s.Dirichlet([]float64{1, 0, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p[1] != 0 {
		t.Errorf("expected zero-mass prior entry to stay zero, got %v", p[1])
	}
}

func TestDirichlet_UniformExpectation(t *testing.T) {
	const k = 4
	const n = 50000
	alpha := []float64{1, 1, 1, 1}
	s := New(99)
	sums := make([]float64, k)
	for i := 0; i < n; i++ {
		p, err := s.Dirichlet(alpha)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for j, v := range p {
			sums[j] += v
		}
	}
	for j, total := range sums {
		mean := total / n
		if math.Abs(mean-1.0/k) > 0.02 {
			t.Errorf("component %d: mean %v far from expected %v", j, mean, 1.0/k)
		}
	}
}

func TestDirichlet_IsSimplex(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 8).Draw(t, "n")
		alpha := make([]float64, n)
		allZero := true
		for i := range alpha {
			alpha[i] = rapid.Float64Range(0, 5).Draw(t, "alpha_i")
			if alpha[i] != 0 {
				allZero = false
			}
		}
		s := New(rapid.Uint64().Draw(t, "seed"))
		p, err := s.Dirichlet(alpha)
		if allZero {
			if err == nil {
				t.Fatal("expected error for all-zero alpha")
			}
			return
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var sum float64
		for _, v := range p {
			if v < 0 || v > 1 {
				t.Fatalf("component out of [0,1]: %v", v)
			}
			sum += v
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Fatalf("simplex sum = %v, want ~1", sum)
		}
	})
}
