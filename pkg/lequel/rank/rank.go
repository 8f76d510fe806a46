// Package rank picks the reference language closest to a text profile.
package rank

import (
	"sort"

	"github.com/cognicore/lequel/pkg/lequel/ngram"
	"github.com/cognicore/lequel/pkg/lequel/profile"
	"github.com/cognicore/lequel/pkg/lequel/similarity"
	"github.com/cognicore/lequel/pkg/lequel/text"
)

// Unknown is returned when no language scores above the starting sentinel.
const Unknown = "---"

// noScore is lower than any attainable similarity.
const noScore = -1.0

// Language pairs a language code with its normalized reference profile.
type Language struct {
	Code    string
	Profile profile.Profile
}

// Score is the similarity of a text to one language.
type Score struct {
	Code       string  `json:"code"`
	Similarity float64 `json:"similarity"`
}

// Identify returns the code of the language most similar to textProfile.
// textProfile must already be normalized. Only a strictly higher score
// replaces the current best, so among equal scores the earliest language
// in langs wins. An empty langs yields Unknown.
func Identify(textProfile profile.Profile, langs []Language) string {
	best := noScore
	code := Unknown
	for _, lang := range langs {
		score := similarity.Cosine(textProfile, lang.Profile)
		if score > best {
			best = score
			code = lang.Code
		}
	}
	return code
}

// Rank scores every language against textProfile, best first. Equal
// scores keep their order in langs, so Rank(p, langs)[0] agrees with
// Identify(p, langs).
func Rank(textProfile profile.Profile, langs []Language) []Score {
	scores := make([]Score, len(langs))
	for i, lang := range langs {
		scores[i] = Score{
			Code:       lang.Code,
			Similarity: similarity.Cosine(textProfile, lang.Profile),
		}
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Similarity > scores[j].Similarity
	})
	return scores
}

// Ranker builds text profiles with its extractor and ranks them.
type Ranker struct {
	extractor *ngram.Extractor
}

// NewRanker creates a ranker using ex to profile input text.
func NewRanker(ex *ngram.Extractor) *Ranker {
	if ex == nil {
		ex = ngram.NewExtractor(ngram.DefaultSize)
	}
	return &Ranker{extractor: ex}
}

// Profile builds and normalizes the profile of t.
func (r *Ranker) Profile(t text.Text) profile.Profile {
	p := r.extractor.Build(t)
	p.Normalize()
	return p
}

// IdentifyText profiles t and returns the best matching language code.
func (r *Ranker) IdentifyText(t text.Text, langs []Language) string {
	return Identify(r.Profile(t), langs)
}

// RankText profiles t and returns every language's score, best first.
func (r *Ranker) RankText(t text.Text, langs []Language) []Score {
	return Rank(r.Profile(t), langs)
}
