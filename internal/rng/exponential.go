package rng

import "math"

// Exponential draws from Exp(lambda): -ln(1-Uniform())/lambda.
// lambda must be strictly positive.
func (s *Source) Exponential(lambda float64) (float64, error) {
	if lambda <= 0 {
		return 0, invalidParam("Exponential", "lambda must be positive")
	}
	return -math.Log(1-s.Uniform()) / lambda, nil
}

// mustExponential1 draws Exp(1) for Gamma's Johnk's method and its a≈1
// fallback, where lambda=1 can never be non-positive.
func (s *Source) mustExponential1() float64 {
	v, _ := s.Exponential(1)
	return v
}
