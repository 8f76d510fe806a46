// Package ngram extracts character n-gram profiles from text.
//
// Windows are taken over Unicode code points, never bytes, so an accented
// Latin, Cyrillic or CJK character always counts as a single unit.
package ngram

import (
	"strings"

	"github.com/cognicore/lequel/pkg/lequel/profile"
	"github.com/cognicore/lequel/pkg/lequel/text"
)

// DefaultSize is the trigram window length.
const DefaultSize = 3

// Extractor slides a fixed-size rune window across each line of a text.
type Extractor struct {
	size int
}

// NewExtractor creates an extractor for n-grams of the given size.
// A size below 1 falls back to DefaultSize.
func NewExtractor(size int) *Extractor {
	if size < 1 {
		size = DefaultSize
	}
	return &Extractor{size: size}
}

// Size returns the window length in runes.
func (e *Extractor) Size() int {
	return e.size
}

// Build counts every n-gram occurrence in t. Each line loses one trailing
// '\r'; lines shorter than the window contribute nothing.
func (e *Extractor) Build(t text.Text) profile.Profile {
	p := profile.New(0)
	for _, line := range t {
		e.addLine(p, line)
	}
	return p
}

// Count returns how many windows line yields.
func (e *Extractor) Count(line string) int {
	n := len([]rune(strings.TrimSuffix(line, "\r")))
	if n < e.size {
		return 0
	}
	return n - e.size + 1
}

func (e *Extractor) addLine(p profile.Profile, line string) {
	runes := []rune(strings.TrimSuffix(line, "\r"))
	if len(runes) < e.size {
		return
	}
	for i := 0; i+e.size <= len(runes); i++ {
		p.Add(string(runes[i:i+e.size]), 1)
	}
}
