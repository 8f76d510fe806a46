package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"sort"
	"strconv"

	"github.com/cognicore/lequel/pkg/lequel/csvdata"
	"github.com/cognicore/lequel/pkg/lequel/profile"
)

// Table converts raw counts into (trigram, count) rows ordered by
// descending count, then trigram. A positive limit keeps only the most
// frequent rows.
func Table(counts profile.Profile, limit int) [][]string {
	grams := make([]string, 0, len(counts))
	for gram := range counts {
		grams = append(grams, gram)
	}
	sort.Slice(grams, func(i, j int) bool {
		ci, cj := counts[grams[i]], counts[grams[j]]
		if ci != cj {
			return ci > cj
		}
		return grams[i] < grams[j]
	})
	if limit > 0 && len(grams) > limit {
		grams = grams[:limit]
	}

	rows := make([][]string, len(grams))
	for i, gram := range grams {
		rows[i] = []string{gram, strconv.FormatInt(int64(math.Round(counts[gram])), 10)}
	}
	return rows
}

// WriteProfile writes counts as a trigram table at path.
func WriteProfile(path string, counts profile.Profile, limit int) error {
	return csvdata.WriteFile(path, Table(counts, limit))
}

// UpsertName sets the display name of code in the languages index at path,
// creating the file if needed. Existing rows keep their order; a new code
// is appended. Malformed rows are preserved untouched.
func UpsertName(path, code, name string) error {
	rows, err := csvdata.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read languages index: %w", err)
	}

	found := false
	for _, fields := range rows {
		if len(fields) == 2 && fields[0] == code {
			fields[1] = name
			found = true
		}
	}
	if !found {
		rows = append(rows, []string{code, name})
	}

	if err := csvdata.WriteFile(path, rows); err != nil {
		return fmt.Errorf("write languages index: %w", err)
	}
	return nil
}
