package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"schemadesk/internal/output"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Render the relationship graph",
	Long: `Graph prints every validated relation in the catalog. The default text
format lists edges one per line; --format mermaid emits an ER diagram the
console embeds directly.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cons, err := loadConsole(flagDir)
		if err != nil {
			return err
		}

		switch flagFormat {
		case string(output.FormatMermaid):
			formatter, err := output.NewFormatter(flagFormat)
			if err != nil {
				return err
			}
			diagram, err := formatter.FormatCatalog(cons)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), diagram)
		case string(output.FormatJSON):
			data, err := json.MarshalIndent(cons.Relations(), "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
		default:
			out := cmd.OutOrStdout()
			rels := cons.Relations()
			fmt.Fprintf(out, "%d relation(s)\n", len(rels))
			for _, r := range rels {
				fmt.Fprintf(out, "  %s.%s -> %s.%s (%s)\n", r.FromTable, r.FromColumn, r.ToTable, r.ToColumn, r.Kind)
			}
		}
		return nil
	},
}
