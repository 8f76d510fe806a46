package report

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/lequel/pkg/lequel/rank"
)

// Builder constructs identification reports
type Builder struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

// New creates a new report builder
func New() *Builder {
	return &Builder{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
}

// Report is the outcome of identifying one text
type Report struct {
	ID        string       `json:"id"`
	Code      string       `json:"code"`
	Name      string       `json:"name"`
	Known     bool         `json:"known"`
	Trigrams  int          `json:"trigrams"`
	Scores    []rank.Score `json:"scores,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// Input carries what the ranker produced for one text
type Input struct {
	Code     string
	Name     string
	Named    bool
	Trigrams int
	Scores   []rank.Score
	TopK     int
}

// Build creates a report, keeping at most TopK scores when TopK is positive
func (b *Builder) Build(in Input) Report {
	scores := in.Scores
	if in.TopK > 0 && len(scores) > in.TopK {
		scores = scores[:in.TopK]
	}

	now := b.now()
	b.mu.Lock()
	id := ulid.MustNew(ulid.Timestamp(now), b.entropy).String()
	b.mu.Unlock()

	return Report{
		ID:        id,
		Code:      in.Code,
		Name:      in.Name,
		Known:     in.Code != rank.Unknown && in.Named,
		Trigrams:  in.Trigrams,
		Scores:    append([]rank.Score(nil), scores...),
		CreatedAt: now.UTC(),
	}
}
