package audio

import (
	"fmt"
	"math"
)

// Quantizer maps a captured audio frame to the index of its nearest
// codebook centroid in a small feature space (per-band log-energy).
// The resulting index is the discrete symbol internal/hmm and
// internal/corpus operate on.
type Quantizer struct {
	centroids [][]float64 // len == codebook size, each of the same dimension
	numBands  int
}

// NewQuantizer builds a Quantizer from a trained codebook. Every
// centroid must have the same positive dimension.
func NewQuantizer(centroids [][]float64) (*Quantizer, error) {
	if len(centroids) == 0 {
		return nil, fmt.Errorf("audio: NewQuantizer: empty codebook")
	}
	dim := len(centroids[0])
	if dim == 0 {
		return nil, fmt.Errorf("audio: NewQuantizer: zero-dimensional centroid")
	}
	for i, c := range centroids {
		if len(c) != dim {
			return nil, fmt.Errorf("audio: NewQuantizer: centroid %d has dimension %d, want %d", i, len(c), dim)
		}
	}
	return &Quantizer{centroids: centroids, numBands: dim}, nil
}

// CodebookSize returns K, the number of centroids.
func (q *Quantizer) CodebookSize() int { return len(q.centroids) }

// FeatureVector reduces a raw frame to per-band log-energy: the frame
// is split into q.numBands equal contiguous chunks and each chunk's
// mean squared amplitude is log-scaled.
func (q *Quantizer) FeatureVector(frame []float32) []float64 {
	out := make([]float64, q.numBands)
	chunkLen := len(frame) / q.numBands
	if chunkLen == 0 {
		return out
	}
	for b := 0; b < q.numBands; b++ {
		start := b * chunkLen
		end := start + chunkLen
		if b == q.numBands-1 {
			end = len(frame)
		}
		var energy float64
		for _, s := range frame[start:end] {
			energy += float64(s) * float64(s)
		}
		energy /= float64(end - start)
		out[b] = math.Log(energy + 1e-12)
	}
	return out
}

// Quantize returns the index of the centroid nearest frame's feature
// vector under Euclidean distance.
func (q *Quantizer) Quantize(frame []float32) int {
	v := q.FeatureVector(frame)
	best, bestDist := 0, math.Inf(1)
	for i, c := range q.centroids {
		d := sqDist(v, c)
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func sqDist(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// FitQuantizer trains a codebook of k centroids from example feature
// vectors using Lloyd's algorithm (k-means), seeded from the first k
// vectors. It runs for a fixed number of iterations rather than until
// convergence, since this is a reference feature extractor, not a
// tuned production quantizer.
func FitQuantizer(vectors [][]float64, k int, iterations int) (*Quantizer, error) {
	if k <= 0 {
		return nil, fmt.Errorf("audio: FitQuantizer: k must be positive")
	}
	if len(vectors) < k {
		return nil, fmt.Errorf("audio: FitQuantizer: need at least %d vectors, got %d", k, len(vectors))
	}

	centroids := make([][]float64, k)
	for i := range centroids {
		centroids[i] = append([]float64(nil), vectors[i]...)
	}

	dim := len(vectors[0])
	for iter := 0; iter < iterations; iter++ {
		sums := make([][]float64, k)
		counts := make([]int, k)
		for i := range sums {
			sums[i] = make([]float64, dim)
		}

		for _, v := range vectors {
			best, bestDist := 0, math.Inf(1)
			for i, c := range centroids {
				d := sqDist(v, c)
				if d < bestDist {
					best, bestDist = i, d
				}
			}
			counts[best]++
			for d := 0; d < dim; d++ {
				sums[best][d] += v[d]
			}
		}

		for i := range centroids {
			if counts[i] == 0 {
				continue // keep the previous centroid rather than dividing by zero
			}
			for d := 0; d < dim; d++ {
				centroids[i][d] = sums[i][d] / float64(counts[i])
			}
		}
	}

	return NewQuantizer(centroids)
}
