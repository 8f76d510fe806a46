package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/lequel/pkg/lequel/internalerr"
	"github.com/cognicore/lequel/pkg/lequel/ngram"
	"github.com/cognicore/lequel/pkg/lequel/text"
)

// Config holds the lequel settings read from YAML.
type Config struct {
	DataDir      string `yaml:"data_dir"`
	NamesFile    string `yaml:"names_file"`
	TrigramDir   string `yaml:"trigram_dir"`
	Database     string `yaml:"database"`
	NgramSize    int    `yaml:"ngram_size"`
	UnknownLabel string `yaml:"unknown_label"`
	TopK         int    `yaml:"top_k"`
	NormalizeNFC bool   `yaml:"normalize_nfc"`
	SelfNames    bool   `yaml:"self_names"`
	MaxFileBytes int64  `yaml:"max_file_bytes"`
	Log          Log    `yaml:"log"`
}

// Log configures the logger.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		DataDir:      "resources",
		NamesFile:    "languagecode_names_es.csv",
		TrigramDir:   "trigrams",
		NgramSize:    ngram.DefaultSize,
		UnknownLabel: "Desconocido",
		TopK:         5,
		SelfNames:    true,
		MaxFileBytes: text.DefaultMaxFileBytes,
		Log: Log{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads a YAML file on top of Default. An empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.NgramSize < 1 {
		return fmt.Errorf("%w: ngram_size must be positive, got %d", internalerr.ErrInvalidConfig, c.NgramSize)
	}
	if c.TopK < 0 {
		return fmt.Errorf("%w: top_k must not be negative", internalerr.ErrInvalidConfig)
	}
	if c.MaxFileBytes < 0 {
		return fmt.Errorf("%w: max_file_bytes must not be negative", internalerr.ErrInvalidConfig)
	}
	if strings.TrimSpace(c.NamesFile) == "" {
		return fmt.Errorf("%w: names_file is required", internalerr.ErrInvalidConfig)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "console", "json":
	default:
		return fmt.Errorf("%w: log.format %q", internalerr.ErrInvalidConfig, c.Log.Format)
	}
	return nil
}

// NamesPath is the languages index file, resolved against DataDir.
func (c Config) NamesPath() string {
	return c.resolve(c.NamesFile)
}

// TrigramPath is the directory of per-language trigram tables.
func (c Config) TrigramPath() string {
	return c.resolve(c.TrigramDir)
}

// DatabasePath is the SQLite profile database, or "" when unset.
func (c Config) DatabasePath() string {
	if c.Database == "" {
		return ""
	}
	return c.resolve(c.Database)
}

func (c Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.DataDir == "" {
		return p
	}
	return filepath.Join(c.DataDir, p)
}
