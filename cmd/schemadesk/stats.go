package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"schemadesk/internal/output"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print catalog aggregates: tables, fields, domains, relations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cons, err := loadConsole(flagDir)
		if err != nil {
			return err
		}

		if flagFormat == string(output.FormatJSON) {
			data, err := json.MarshalIndent(cons.Stats(), "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}

		// The summary formatter is the stats rendering.
		formatter, err := output.NewFormatter(string(output.FormatSummary))
		if err != nil {
			return err
		}
		rendered, err := formatter.FormatCatalog(cons)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), rendered)
		return nil
	},
}
