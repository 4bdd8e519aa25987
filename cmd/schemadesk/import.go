package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"schemadesk/internal/parser/mysql"
)

var (
	importDomain string
	importLabel  string
	importOut    string
)

func init() {
	importCmd.Flags().StringVar(&importDomain, "domain", "", "Domain name for the imported tables (required)")
	importCmd.Flags().StringVar(&importLabel, "label", "", "Display label for the domain")
	importCmd.Flags().StringVarP(&importOut, "output", "o", "", "Write the domain JSON to a file instead of stdout")
	_ = importCmd.MarkFlagRequired("domain")
}

var importCmd = &cobra.Command{
	Use:   "import <dump.sql>",
	Short: "Import a MySQL dump as a domain table-set file",
	Long: `Import parses the CREATE TABLE statements of a MySQL dump and emits the
equivalent domain JSON: fields with types, keys and comments, plus inline
foreign-key annotations the graph builder picks up.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		domain, err := mysql.NewImporter().ImportFile(importDomain, args[0])
		if err != nil {
			return err
		}
		domain.Label = importLabel

		data, err := json.MarshalIndent(domain, "", "  ")
		if err != nil {
			return err
		}
		data = append(data, '\n')

		if importOut == "" {
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		}
		if err := os.WriteFile(importOut, data, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Imported %d table(s) into %s\n", len(domain.Tables), importOut)
		return nil
	},
}
