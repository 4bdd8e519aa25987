package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"schemadesk/internal/catalog"
	"schemadesk/internal/diff"
	"schemadesk/internal/output"
	"schemadesk/internal/parser"
)

var diffCmd = &cobra.Command{
	Use:   "diff <old-dir> <new-dir>",
	Short: "Compare two catalog versions",
	Long: `Diff builds a catalog from each directory and reports the table, field,
and relation differences between them, e.g. between the checked-in schema
and a working copy.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		oldReg, err := loadRegistry(args[0])
		if err != nil {
			return fmt.Errorf("old catalog: %w", err)
		}
		newReg, err := loadRegistry(args[1])
		if err != nil {
			return fmt.Errorf("new catalog: %w", err)
		}

		formatter, err := output.NewFormatter(flagFormat)
		if err != nil {
			return err
		}
		rendered, err := formatter.FormatDiff(diff.Diff(oldReg, newReg))
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), rendered)
		return nil
	},
}

// loadRegistry builds just the registry; diffing needs no graph and tolerates
// non-fatal findings on either side.
func loadRegistry(dir string) (*catalog.Registry, error) {
	domains, err := parser.LoadDir(dir)
	if err != nil {
		return nil, err
	}
	reg, _, err := catalog.Build(domains)
	return reg, err
}
