// Package similarity compares n-gram profiles.
package similarity

import (
	"maps"
	"slices"

	"github.com/cognicore/lequel/pkg/lequel/profile"
)

// Cosine returns the dot product of a and b over their shared n-grams.
// Both profiles must already be L2-normalized for the result to be the
// cosine of the angle between them; Cosine does not normalize.
//
// The smaller profile is walked in sorted key order with lookups into the
// larger one, so the result is reproducible bit for bit across calls.
func Cosine(a, b profile.Profile) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}

	var dot float64
	for _, gram := range slices.Sorted(maps.Keys(small)) {
		if w, ok := large[gram]; ok {
			dot += small[gram] * w
		}
	}
	return dot
}
