package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cognicore/lequel/pkg/lequel"
	"github.com/cognicore/lequel/pkg/lequel/loader"
	"github.com/cognicore/lequel/pkg/lequel/profile"
)

func newTrainCommand(ctx *commandContext) *cobra.Command {
	var (
		code   string
		name   string
		inputs []string
		out    string
		limit  int
		html   bool
	)

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Build a reference trigram table for a language from a corpus",
		RunE: func(cmd *cobra.Command, args []string) error {
			code = strings.TrimSpace(code)
			if code == "" {
				return errors.New("--lang is required")
			}
			cfg := ctx.configValue()
			logger := ctx.log()

			engine := lequel.New(lequel.Options{
				NgramSize:    cfg.NgramSize,
				NormalizeNFC: cfg.NormalizeNFC,
				Logger:       logger,
			})
			counts := profile.New(0)

			if len(inputs) == 0 {
				t, err := readInput(cmd, inputOptions{html: html}, nil, cfg)
				if err != nil {
					return err
				}
				mergeCounts(counts, engine.Count(t))
			}
			for _, path := range inputs {
				t, err := readInput(cmd, inputOptions{file: path, html: html}, nil, cfg)
				if err != nil {
					return fmt.Errorf("read corpus %s: %w", path, err)
				}
				mergeCounts(counts, engine.Count(t))
				logger.Debug("profiled corpus file", "path", path, "ngrams", len(counts))
			}
			if len(counts) == 0 {
				return fmt.Errorf("corpus for %q produced no %d-grams", code, cfg.NgramSize)
			}

			if out == "" {
				out = filepath.Join(cfg.TrigramPath(), code+".csv")
			}
			if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
				return err
			}
			if err := loader.WriteProfile(out, counts, limit); err != nil {
				return err
			}
			logger.Info("wrote trigram table", "code", code, "path", out, "ngrams", limitOrAll(limit, len(counts)))

			if name != "" {
				if err := loader.UpsertName(cfg.NamesPath(), code, name); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d trigrams -> %s\n", code, limitOrAll(limit, len(counts)), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&code, "lang", "l", "", "Language code of the corpus")
	cmd.Flags().StringVar(&name, "name", "", "Display name to record in the languages index")
	cmd.Flags().StringSliceVarP(&inputs, "input", "i", nil, "Corpus file (repeatable; stdin when omitted)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output CSV path (default <trigram dir>/<lang>.csv)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Keep only the most frequent trigrams (0 keeps all)")
	cmd.Flags().BoolVar(&html, "html", false, "Treat corpus files as HTML")

	return cmd
}

func mergeCounts(dst, src profile.Profile) {
	for gram, n := range src {
		dst.Add(gram, n)
	}
}

func limitOrAll(limit, n int) int {
	if limit > 0 && limit < n {
		return limit
	}
	return n
}
