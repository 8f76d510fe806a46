package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cognicore/lequel/pkg/lequel"
)

func newLanguagesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the reference languages in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := lequel.Open(cmd.Context(), ctx.configValue(), ctx.log())
			if err != nil {
				return fmt.Errorf("load language profiles: %w", err)
			}

			cat := engine.Catalog()
			rows := make([][]string, 0, len(cat.Languages))
			for _, l := range cat.Languages {
				name, _ := cat.Name(l.Code)
				rows = append(rows, []string{l.Code, name, strconv.Itoa(len(l.Profile))})
			}

			headers := []string{"Code", "Language", "Trigrams"}
			fmt.Fprint(cmd.OutOrStdout(), renderRows(cmd.OutOrStdout(), headers, rows, []columnAlignment{alignLeft, alignLeft, alignRight}))
			return nil
		},
	}
}
