// Package profile holds n-gram frequency profiles and their L2 normalization.
package profile

import "math"

// Profile maps an n-gram to its frequency weight. Weights are non-negative.
type Profile map[string]float64

// New creates an empty profile with room for n entries.
func New(n int) Profile {
	return make(Profile, n)
}

// Add accumulates weight for gram.
func (p Profile) Add(gram string, weight float64) {
	p[gram] += weight
}

// SumSquares returns the sum of squared weights.
func (p Profile) SumSquares() float64 {
	var sum float64
	for _, w := range p {
		sum += w * w
	}
	return sum
}

// Normalize scales p in place to unit L2 norm. The caller must own p;
// profiles shared across goroutines or comparisons should use Normalized.
// A profile whose weights are all zero is left unchanged.
func (p Profile) Normalize() {
	sumSquares := p.SumSquares()
	if sumSquares == 0 {
		return
	}

	norm := math.Sqrt(sumSquares)
	for gram, w := range p {
		p[gram] = w / norm
	}
}

// Normalized returns a unit-norm copy of p, leaving p untouched.
func (p Profile) Normalized() Profile {
	out := p.Clone()
	out.Normalize()
	return out
}

// Clone returns an independent copy of p.
func (p Profile) Clone() Profile {
	out := make(Profile, len(p))
	for gram, w := range p {
		out[gram] = w
	}
	return out
}

// Total returns the sum of all weights. For a raw extracted profile this
// is the number of n-gram occurrences.
func (p Profile) Total() float64 {
	var total float64
	for _, w := range p {
		total += w
	}
	return total
}
