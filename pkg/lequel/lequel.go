// Package lequel identifies the language of a text by comparing its
// character trigram profile with reference language profiles.
package lequel

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cognicore/lequel/pkg/lequel/config"
	"github.com/cognicore/lequel/pkg/lequel/loader"
	"github.com/cognicore/lequel/pkg/lequel/ngram"
	"github.com/cognicore/lequel/pkg/lequel/profile"
	"github.com/cognicore/lequel/pkg/lequel/rank"
	"github.com/cognicore/lequel/pkg/lequel/report"
	"github.com/cognicore/lequel/pkg/lequel/store/sqlite"
	"github.com/cognicore/lequel/pkg/lequel/text"
)

// Lequel is the language identification facade
type Lequel struct {
	catalog   *loader.Catalog
	extractor *ngram.Extractor
	ranker    *rank.Ranker
	reports   *report.Builder
	nfc       bool
	topK      int
	logger    *slog.Logger
}

// Options configures a Lequel instance
type Options struct {
	Catalog      *loader.Catalog
	NgramSize    int
	NormalizeNFC bool
	TopK         int
	Logger       *slog.Logger
}

// New creates a Lequel instance over an already loaded catalog
func New(opts Options) *Lequel {
	cat := opts.Catalog
	if cat == nil {
		cat = &loader.Catalog{Names: map[string]string{}}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	ex := ngram.NewExtractor(opts.NgramSize)

	return &Lequel{
		catalog:   cat,
		extractor: ex,
		ranker:    rank.NewRanker(ex),
		reports:   report.New(),
		nfc:       opts.NormalizeNFC,
		topK:      opts.TopK,
		logger:    logger,
	}
}

// Open loads the catalog named by cfg, from the SQLite database when one
// is configured and from the CSV files otherwise.
func Open(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Lequel, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var (
		cat *loader.Catalog
		err error
	)
	if path := cfg.DatabasePath(); path != "" {
		cat, err = loadFromDatabase(ctx, path)
	} else {
		l := loader.Loader{
			NamesPath:  cfg.NamesPath(),
			TrigramDir: cfg.TrigramPath(),
			Logger:     logger,
		}
		cat, err = l.Load()
	}
	if err != nil {
		return nil, err
	}
	cat.SelfNames = cfg.SelfNames
	if len(cat.Languages) == 0 {
		logger.Warn("no language profiles loaded; every text will be unknown")
	}

	return New(Options{
		Catalog:      cat,
		NgramSize:    cfg.NgramSize,
		NormalizeNFC: cfg.NormalizeNFC,
		TopK:         cfg.TopK,
		Logger:       logger,
	}), nil
}

func loadFromDatabase(ctx context.Context, path string) (*loader.Catalog, error) {
	st, err := sqlite.OpenSQLite(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open profile database: %w", err)
	}
	defer st.Close()

	return loader.FromStore(ctx, st)
}

// Catalog returns the reference languages in use
func (l *Lequel) Catalog() *loader.Catalog {
	return l.catalog
}

// Identify returns the code of the language most similar to t, or
// rank.Unknown when there are no reference languages.
func (l *Lequel) Identify(t text.Text) string {
	return l.ranker.IdentifyText(l.prepare(t), l.catalog.Languages)
}

// Report identifies t and explains the result with ranked scores
func (l *Lequel) Report(t text.Text) report.Report {
	p := l.Count(t)
	trigrams := int(p.Total())
	p.Normalize()

	code := rank.Identify(p, l.catalog.Languages)
	name, named := l.catalog.Name(code)

	r := l.reports.Build(report.Input{
		Code:     code,
		Name:     name,
		Named:    named,
		Trigrams: trigrams,
		Scores:   rank.Rank(p, l.catalog.Languages),
		TopK:     l.topK,
	})
	l.logger.Debug("identified text",
		"id", r.ID,
		"code", r.Code,
		"trigrams", r.Trigrams,
		"languages", len(l.catalog.Languages),
	)
	return r
}

// Count returns the raw n-gram counts of t after the same text preparation
// Identify applies, so trained tables and identified input agree.
func (l *Lequel) Count(t text.Text) profile.Profile {
	return l.extractor.Build(l.prepare(t))
}

func (l *Lequel) prepare(t text.Text) text.Text {
	if l.nfc {
		return text.NFC(t)
	}
	return t
}
