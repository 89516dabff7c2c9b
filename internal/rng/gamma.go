package rng

import "math"

// gammaBoundaryEps is the half-width of the band around a=1 that is
// routed to the exponential fallback instead of Johnk's method, whose
// y = v^(1/(1-a)) term divides by 1-a.
const gammaBoundaryEps = 1e-7

// Gamma draws from Gamma(a, theta) using Best's XG rejection method for
// a>1 and Johnk's method for a<1. The boundary a≈1 is guarded and
// falls back to Exponential(1)*theta (Gamma(1,θ) is exactly Exp(1/θ)),
// since Johnk's method would otherwise divide by a near-zero 1-a. This
// guard is internal bookkeeping, never a surfaced NumericEdge error.
func (s *Source) Gamma(a, theta float64) (float64, error) {
	if a <= 0 {
		return 0, invalidParam("Gamma", "shape must be positive")
	}
	if theta <= 0 {
		return 0, invalidParam("Gamma", "scale must be positive")
	}

	switch {
	case a > 1+gammaBoundaryEps:
		return s.gammaBest(a) * theta, nil
	case a < 1-gammaBoundaryEps:
		return s.gammaJohnk(a) * theta, nil
	default:
		return s.mustExponential1() * theta, nil
	}
}

// gammaBest implements Best's XG rejection method for a>1.
func (s *Source) gammaBest(a float64) float64 {
	b := a - 1
	c := 3*a - 0.75
	for {
		u := s.Uniform()
		v := s.Uniform()
		w := u * (1 - u)
		y := math.Sqrt(c/w) * (u - 0.5)
		x := b + y
		if x < 0 {
			continue
		}
		z := 64 * w * w * w * v * v
		if z <= 1-2*y*y/x || math.Log(z) <= 2*(b*math.Log(x/b)-y) {
			return x
		}
	}
}

// gammaJohnk implements Johnk's method for a<1.
func (s *Source) gammaJohnk(a float64) float64 {
	var x, y float64
	for {
		u := s.Uniform()
		v := s.Uniform()
		x = math.Pow(u, 1/a)
		y = math.Pow(v, 1/(1-a))
		if x+y <= 1 {
			break
		}
	}
	e := s.mustExponential1()
	return e * x / (x + y)
}
