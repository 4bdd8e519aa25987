package main

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"schemadesk/internal/output"
)

var tablesDomain string

func init() {
	tablesCmd.Flags().StringVar(&tablesDomain, "domain", "", "List only one domain's tables")
}

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List tables, grouped by domain",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cons, err := loadConsole(flagDir)
		if err != nil {
			return err
		}

		domains := cons.Domains()
		if tablesDomain != "" {
			if !slices.Contains(domains, tablesDomain) {
				return fmt.Errorf("unknown domain %q", tablesDomain)
			}
			domains = []string{tablesDomain}
		}

		if flagFormat == string(output.FormatJSON) {
			byDomain := make(map[string][]string, len(domains))
			for _, d := range domains {
				for _, t := range cons.TablesInDomain(d) {
					byDomain[d] = append(byDomain[d], t.Name)
				}
			}
			data, err := json.MarshalIndent(byDomain, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}

		out := cmd.OutOrStdout()
		for _, d := range domains {
			if label := cons.DomainLabel(d); label != "" {
				fmt.Fprintf(out, "%s (%s)\n", d, label)
			} else {
				fmt.Fprintf(out, "%s\n", d)
			}
			for _, t := range cons.TablesInDomain(d) {
				if t.Comment != "" {
					fmt.Fprintf(out, "  %-28s %s\n", t.Name, t.Comment)
				} else {
					fmt.Fprintf(out, "  %s\n", t.Name)
				}
			}
		}
		return nil
	},
}
