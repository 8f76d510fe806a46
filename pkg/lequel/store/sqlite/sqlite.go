package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/cognicore/lequel/pkg/lequel/profile"
	"github.com/cognicore/lequel/pkg/lequel/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite profile database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS languages (
	code TEXT PRIMARY KEY,
	name TEXT NOT NULL DEFAULT '',
	position INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS ngrams (
	code TEXT NOT NULL,
	gram TEXT NOT NULL,
	count REAL NOT NULL,
	PRIMARY KEY(code, gram),
	FOREIGN KEY(code) REFERENCES languages(code) ON DELETE CASCADE
);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// UpsertLanguage inserts or replaces a language and all of its n-gram counts
func (s *sqliteStore) UpsertLanguage(ctx context.Context, l store.Language) error {
	if l.Code == "" {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const upsert = `
INSERT INTO languages (code, name, position)
VALUES (?, ?, ?)
ON CONFLICT(code) DO UPDATE SET
	name=excluded.name,
	position=excluded.position;
`
	if _, err := tx.ExecContext(ctx, upsert, l.Code, l.Name, l.Position); err != nil {
		return fmt.Errorf("upsert language %q: %w", l.Code, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM ngrams WHERE code = ?`, l.Code); err != nil {
		return fmt.Errorf("clear ngrams %q: %w", l.Code, err)
	}

	if len(l.Counts) > 0 {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO ngrams (code, gram, count) VALUES (?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for gram, count := range l.Counts {
			if _, err := stmt.ExecContext(ctx, l.Code, gram, count); err != nil {
				return fmt.Errorf("insert ngram %q for %q: %w", gram, l.Code, err)
			}
		}
	}

	return tx.Commit()
}

// GetLanguage returns a language by code
func (s *sqliteStore) GetLanguage(ctx context.Context, code string) (store.Language, bool, error) {
	l := store.Language{Code: code}
	err := s.db.QueryRowContext(ctx,
		`SELECT name, position FROM languages WHERE code = ?`, code,
	).Scan(&l.Name, &l.Position)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Language{}, false, nil
	}
	if err != nil {
		return store.Language{}, false, err
	}

	counts, err := s.loadCounts(ctx, code)
	if err != nil {
		return store.Language{}, false, err
	}
	l.Counts = counts
	return l, true, nil
}

// ListLanguages returns every language ordered by position, then code
func (s *sqliteStore) ListLanguages(ctx context.Context) ([]store.Language, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT code, name, position FROM languages ORDER BY position, code`)
	if err != nil {
		return nil, err
	}

	var langs []store.Language
	for rows.Next() {
		var l store.Language
		if err := rows.Scan(&l.Code, &l.Name, &l.Position); err != nil {
			rows.Close()
			return nil, err
		}
		langs = append(langs, l)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i := range langs {
		counts, err := s.loadCounts(ctx, langs[i].Code)
		if err != nil {
			return nil, err
		}
		langs[i].Counts = counts
	}
	return langs, nil
}

// DeleteLanguage removes a language and its n-grams
func (s *sqliteStore) DeleteLanguage(ctx context.Context, code string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// foreign_keys is per connection, so the cascade is not relied on
	if _, err := tx.ExecContext(ctx, `DELETE FROM ngrams WHERE code = ?`, code); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM languages WHERE code = ?`, code); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *sqliteStore) loadCounts(ctx context.Context, code string) (profile.Profile, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT gram, count FROM ngrams WHERE code = ?`, code)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := profile.New(0)
	for rows.Next() {
		var gram string
		var count float64
		if err := rows.Scan(&gram, &count); err != nil {
			return nil, err
		}
		counts[gram] = count
	}
	return counts, rows.Err()
}
