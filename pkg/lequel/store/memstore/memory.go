package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/cognicore/lequel/pkg/lequel/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu    sync.RWMutex
	langs map[string]store.Language
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{langs: make(map[string]store.Language)}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// UpsertLanguage inserts or replaces a language, keyed by code.
func (s *Store) UpsertLanguage(ctx context.Context, l store.Language) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l.Code == "" {
		return nil
	}
	s.langs[l.Code] = copyLanguage(l)
	return nil
}

// GetLanguage returns a language by code.
func (s *Store) GetLanguage(ctx context.Context, code string) (store.Language, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.langs[code]
	if !ok {
		return store.Language{}, false, nil
	}
	return copyLanguage(l), true, nil
}

// ListLanguages returns all languages ordered by position, then code.
func (s *Store) ListLanguages(ctx context.Context) ([]store.Language, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.Language, 0, len(s.langs))
	for _, l := range s.langs {
		out = append(out, copyLanguage(l))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].Code < out[j].Code
	})
	return out, nil
}

// DeleteLanguage removes a language; unknown codes are ignored.
func (s *Store) DeleteLanguage(ctx context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.langs, code)
	return nil
}

func copyLanguage(l store.Language) store.Language {
	if l.Counts != nil {
		l.Counts = l.Counts.Clone()
	}
	return l
}
