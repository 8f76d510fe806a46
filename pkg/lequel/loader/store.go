package loader

import (
	"context"
	"fmt"

	"github.com/cognicore/lequel/pkg/lequel/profile"
	"github.com/cognicore/lequel/pkg/lequel/rank"
	"github.com/cognicore/lequel/pkg/lequel/store"
)

// Import copies the CSV catalog into st, keeping index order. It returns
// the number of languages written.
func (l *Loader) Import(ctx context.Context, st store.Store) (int, error) {
	n := 0
	err := l.each(func(code, name string, counts profile.Profile) error {
		lang := store.Language{
			Code:     code,
			Name:     name,
			Position: n,
			Counts:   counts,
		}
		if err := st.UpsertLanguage(ctx, lang); err != nil {
			return fmt.Errorf("store language %q: %w", code, err)
		}
		n++
		return nil
	})
	if err != nil {
		return n, err
	}

	l.logger().Info("imported language catalog", "languages", n)
	return n, nil
}

// FromStore builds a catalog from the languages saved in st, normalizing
// each stored profile.
func FromStore(ctx context.Context, st store.Store) (*Catalog, error) {
	langs, err := st.ListLanguages(ctx)
	if err != nil {
		return nil, fmt.Errorf("list languages: %w", err)
	}

	cat := &Catalog{
		Names:     make(map[string]string, len(langs)),
		Languages: make([]rank.Language, 0, len(langs)),
	}
	for _, l := range langs {
		if l.Name != "" {
			cat.Names[l.Code] = l.Name
		}
		cat.Languages = append(cat.Languages, rank.Language{
			Code:    l.Code,
			Profile: l.Counts.Normalized(),
		})
	}
	return cat, nil
}
