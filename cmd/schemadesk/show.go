package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"schemadesk/internal/catalog"
	"schemadesk/internal/output"
)

var showCmd = &cobra.Command{
	Use:   "show <table>",
	Short: "Show one table's full definition and its relations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cons, err := loadConsole(flagDir)
		if err != nil {
			return err
		}

		name := args[0]
		table, ok := cons.GetTable(name)
		if !ok {
			return fmt.Errorf("table %q not found (names are case-sensitive)", name)
		}
		rels := cons.RelationsFor(name)

		if flagFormat == string(output.FormatJSON) {
			data, err := json.MarshalIndent(map[string]any{
				"domain":    cons.DomainOf(name),
				"table":     table,
				"relations": rels,
			}, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s  (domain: %s)\n", table.Name, cons.DomainOf(name))
		if table.Comment != "" {
			fmt.Fprintf(out, "  %s\n", table.Comment)
		}
		if table.Engine != "" || table.Charset != "" {
			fmt.Fprintf(out, "  engine=%s charset=%s collation=%s\n", table.Engine, table.Charset, table.Collation)
		}
		fmt.Fprintln(out)
		for _, f := range table.Fields {
			fmt.Fprintf(out, "  %-24s %-20s%s", f.Name, f.RenderedType(), showFlags(f))
			if f.Comment != "" {
				fmt.Fprintf(out, "  -- %s", f.Comment)
			}
			fmt.Fprintln(out)
		}

		if len(rels.Outgoing) > 0 {
			fmt.Fprintln(out, "\nReferences:")
			for _, r := range rels.Outgoing {
				fmt.Fprintf(out, "  %s.%s -> %s.%s (%s)\n", r.FromTable, r.FromColumn, r.ToTable, r.ToColumn, r.Kind)
			}
		}
		if len(rels.Incoming) > 0 {
			fmt.Fprintln(out, "\nReferenced by:")
			for _, r := range rels.Incoming {
				fmt.Fprintf(out, "  %s.%s -> %s.%s (%s)\n", r.FromTable, r.FromColumn, r.ToTable, r.ToColumn, r.Kind)
			}
		}
		return nil
	},
}

func showFlags(f *catalog.FieldDefinition) string {
	var flags []string
	if f.PrimaryKey {
		flags = append(flags, "PK")
	}
	if f.AutoIncrement {
		flags = append(flags, "AUTO")
	}
	if f.Unique {
		flags = append(flags, "UNIQUE")
	}
	if !f.Nullable {
		flags = append(flags, "NOT NULL")
	}
	if f.DefaultVal != "" {
		flags = append(flags, "DEFAULT "+f.DefaultVal)
	}
	if len(flags) == 0 {
		return ""
	}
	return " [" + strings.Join(flags, ", ") + "]"
}
