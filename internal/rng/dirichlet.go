package rng

// Dirichlet draws a probability simplex from Dirichlet(alpha) by
// sampling yi = Gamma(alphai, 1) and normalizing by their sum. An
// alpha entry of exactly zero contributes a zero gamma draw without
// invoking Gamma (whose domain is a>0), so a zero-mass prior slot
// yields zero probability as long as some other slot carries mass.
func (s *Source) Dirichlet(alpha []float64) ([]float64, error) {
	if len(alpha) == 0 {
		return nil, invalidParam("Dirichlet", "alpha must be non-empty")
	}

	out := make([]float64, len(alpha))
	var sum float64
	for i, a := range alpha {
		if a < 0 {
			return nil, invalidParam("Dirichlet", "alpha entries must be non-negative")
		}
		if a == 0 {
			continue
		}
		g, err := s.Gamma(a, 1)
		if err != nil {
			return nil, err
		}
		out[i] = g
		sum += g
	}
	if sum == 0 {
		return nil, invalidParam("Dirichlet", "sum of gamma draws is zero (all-zero prior)")
	}
	for i := range out {
		out[i] /= sum
	}
	return out, nil
}
