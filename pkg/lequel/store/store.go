package store

import (
	"context"

	"github.com/cognicore/lequel/pkg/lequel/profile"
)

// Store persists reference language profiles.
type Store interface {
	Close() error

	// Languages
	UpsertLanguage(ctx context.Context, l Language) error
	GetLanguage(ctx context.Context, code string) (Language, bool, error)
	ListLanguages(ctx context.Context) ([]Language, error)
	DeleteLanguage(ctx context.Context, code string) error
}

// Language is a stored reference profile. Counts holds the raw n-gram
// counts; callers normalize after loading.
type Language struct {
	Code     string
	Name     string
	Position int // catalog order, ascending
	Counts   profile.Profile
}
