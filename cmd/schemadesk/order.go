package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"schemadesk/internal/graph"
	"schemadesk/internal/output"
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Print a reference-safe table apply order",
	Long: `Order topologically sorts the relationship graph so every referenced
table comes before the tables referencing it. On a reference cycle the
command names the tables caught in it and fails.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cons, err := loadConsole(flagDir)
		if err != nil {
			return err
		}

		order, err := cons.Graph().TopologicalOrder()
		if err != nil {
			var cycle *graph.CycleDetectedError
			if errors.As(err, &cycle) {
				color.New(color.FgRed, color.Bold).Fprintln(cmd.ErrOrStderr(), err.Error())
				return fmt.Errorf("no apply order exists")
			}
			return err
		}

		if flagFormat == string(output.FormatJSON) {
			data, err := json.MarshalIndent(order, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}
		for i, name := range order {
			fmt.Fprintf(cmd.OutOrStdout(), "%3d. %s\n", i+1, name)
		}
		return nil
	},
}
