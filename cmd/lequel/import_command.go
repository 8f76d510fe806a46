package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cognicore/lequel/pkg/lequel/loader"
	"github.com/cognicore/lequel/pkg/lequel/store/sqlite"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Copy the CSV language catalog into the SQLite profile database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			dbPath := cfg.DatabasePath()
			if dbPath == "" {
				return errors.New("no database configured; pass --db or set database in the config file")
			}

			st, err := sqlite.OpenSQLite(cmd.Context(), dbPath)
			if err != nil {
				return fmt.Errorf("open profile database: %w", err)
			}
			defer st.Close()

			l := loader.Loader{
				NamesPath:  cfg.NamesPath(),
				TrigramDir: cfg.TrigramPath(),
				Logger:     ctx.log(),
			}
			n, err := l.Import(cmd.Context(), st)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d languages into %s\n", n, dbPath)
			return nil
		},
	}
}
