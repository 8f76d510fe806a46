package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cognicore/lequel/pkg/lequel"
	"github.com/cognicore/lequel/pkg/lequel/config"
	"github.com/cognicore/lequel/pkg/lequel/report"
	"github.com/cognicore/lequel/pkg/lequel/text"
)

type inputOptions struct {
	file string
	html bool
}

func newIdentifyCommand(ctx *commandContext) *cobra.Command {
	var (
		in         inputOptions
		showScores bool
		asJSON     bool
		top        int
	)

	cmd := &cobra.Command{
		Use:   "identify [text...]",
		Short: "Identify the language of text given as arguments, a file, or stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			if cmd.Flags().Changed("top") {
				cfg.TopK = top
			}

			t, err := readInput(cmd, in, args, cfg)
			if err != nil {
				return err
			}

			engine, err := lequel.Open(cmd.Context(), cfg, ctx.log())
			if err != nil {
				return fmt.Errorf("load language profiles: %w", err)
			}

			r := engine.Report(t)
			if asJSON {
				return writeJSON(cmd, r)
			}

			fmt.Fprintln(cmd.OutOrStdout(), describe(r, cfg))
			if showScores {
				fmt.Fprint(cmd.OutOrStdout(), renderScores(cmd.OutOrStdout(), r, engine.Catalog().Names))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&in.file, "file", "f", "", "Read the text from a file")
	cmd.Flags().BoolVar(&in.html, "html", false, "Treat the input as HTML and identify its visible text")
	cmd.Flags().BoolVarP(&showScores, "scores", "s", false, "Show the similarity of the closest languages")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full report as JSON")
	cmd.Flags().IntVar(&top, "top", 0, "Number of scores to keep (0 keeps all)")

	return cmd
}

// readInput returns the text named by --file, the joined arguments, or stdin.
func readInput(cmd *cobra.Command, in inputOptions, args []string, cfg config.Config) (text.Text, error) {
	if in.file != "" && len(args) > 0 {
		return nil, errors.New("pass either text arguments or --file, not both")
	}

	switch {
	case in.file != "":
		if in.html || isHTMLPath(in.file) {
			f, err := os.Open(in.file)
			if err != nil {
				return nil, err
			}
			defer f.Close()
			return text.FromHTMLLimit(f, cfg.MaxFileBytes)
		}
		return text.FromFileLimit(in.file, cfg.MaxFileBytes)
	case len(args) > 0:
		joined := strings.Join(args, " ")
		if in.html {
			return text.FromHTML(strings.NewReader(joined))
		}
		return text.FromString(joined), nil
	default:
		if in.html {
			return text.FromHTMLLimit(cmd.InOrStdin(), cfg.MaxFileBytes)
		}
		return text.FromReader(cmd.InOrStdin(), cfg.MaxFileBytes)
	}
}

func isHTMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".xhtml":
		return true
	}
	return false
}

func describe(r report.Report, cfg config.Config) string {
	if r.Known {
		return fmt.Sprintf("%s (%s)", r.Name, r.Code)
	}
	return fmt.Sprintf("%s (%s)", cfg.UnknownLabel, r.Code)
}

func renderScores(w io.Writer, r report.Report, names map[string]string) string {
	rows := make([][]string, 0, len(r.Scores))
	for i, s := range r.Scores {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			s.Code,
			names[s.Code],
			strconv.FormatFloat(s.Similarity, 'f', 4, 64),
		})
	}
	headers := []string{"#", "Code", "Language", "Similarity"}
	return renderRows(w, headers, rows, []columnAlignment{alignRight, alignLeft, alignLeft, alignRight})
}
