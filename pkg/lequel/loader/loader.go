// Package loader reads the reference language catalog from CSV files: a
// languages index of (code, name) rows and one trigrams/<code>.csv table of
// (trigram, count) rows per language.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/cognicore/lequel/pkg/lequel/csvdata"
	"github.com/cognicore/lequel/pkg/lequel/internalerr"
	"github.com/cognicore/lequel/pkg/lequel/profile"
	"github.com/cognicore/lequel/pkg/lequel/rank"
)

// Catalog is the set of reference languages available for ranking.
type Catalog struct {
	Names     map[string]string
	Languages []rank.Language
	// SelfNames lets Name answer for codes missing from the index.
	SelfNames bool
}

// Name returns the display name for code. With SelfNames set, codes missing
// from the index fall back to the language's own name for itself when code
// is a valid BCP 47 tag. The second result is false when no name is known.
func (c *Catalog) Name(code string) (string, bool) {
	if name, ok := c.Names[code]; ok {
		return name, true
	}
	if !c.SelfNames || code == "" || code == rank.Unknown {
		return "", false
	}
	tag, err := language.Parse(code)
	if err != nil {
		return "", false
	}
	name := display.Self.Name(tag)
	return name, name != ""
}

// Codes returns language codes in catalog order.
func (c *Catalog) Codes() []string {
	codes := make([]string, len(c.Languages))
	for i, l := range c.Languages {
		codes[i] = l.Code
	}
	return codes
}

// Loader locates the catalog files.
type Loader struct {
	NamesPath  string
	TrigramDir string
	Logger     *slog.Logger
}

// Load reads the languages index and every listed trigram table. Rows that
// do not have exactly two fields are skipped. Any missing or unreadable
// file aborts loading.
func (l *Loader) Load() (*Catalog, error) {
	cat := &Catalog{Names: make(map[string]string)}
	err := l.each(func(code, name string, counts profile.Profile) error {
		if name != "" {
			cat.Names[code] = name
		}
		counts.Normalize()
		cat.Languages = append(cat.Languages, rank.Language{Code: code, Profile: counts})
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.logger().Info("loaded language catalog", "languages", len(cat.Languages))
	return cat, nil
}

// each calls fn with the raw counts of every language in index order.
func (l *Loader) each(fn func(code, name string, counts profile.Profile) error) error {
	logger := l.logger()
	logger.Info("reading language codes", "path", l.NamesPath)

	rows, err := csvdata.ReadFile(l.NamesPath)
	if err != nil {
		return fmt.Errorf("load languages index: %w", wrapNotFound(err))
	}

	for _, fields := range rows {
		if len(fields) != 2 {
			continue
		}
		code, name := fields[0], fields[1]

		path := filepath.Join(l.TrigramDir, code+".csv")
		logger.Debug("reading trigram profile", "code", code, "path", path)

		counts, err := LoadProfile(path)
		if err != nil {
			return fmt.Errorf("load trigram profile %q: %w", code, err)
		}
		if err := fn(code, name, counts); err != nil {
			return err
		}
	}
	return nil
}

// LoadProfile reads one trigram table into an unnormalized profile. Counts
// that are not non-negative integers are skipped with the rest of their row.
func LoadProfile(path string) (profile.Profile, error) {
	rows, err := csvdata.ReadFile(path)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return ParseProfile(rows), nil
}

// ParseProfile converts (trigram, count) rows into a profile.
func ParseProfile(rows [][]string) profile.Profile {
	p := profile.New(len(rows))
	for _, fields := range rows {
		if len(fields) != 2 {
			continue
		}
		count, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil || count < 0 {
			continue
		}
		p[fields[0]] = float64(count)
	}
	return p
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func wrapNotFound(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w", internalerr.ErrNotFound, err)
	}
	return err
}
