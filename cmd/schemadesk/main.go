// Package main contains the cli implementation of the tool. It uses cobra
// package for cli tool implementation.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagDir    string
	flagFormat string
)

func defaultDir() string {
	if dir := os.Getenv("SCHEMADESK_DIR"); dir != "" {
		return dir
	}
	return "./examples/xilian"
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "schemadesk",
		Short: "Schema catalog toolchain for the Xilian design console",
		Long: `schemadesk loads domain table-set files (JSON or TOML), merges them into
one validated catalog, resolves the cross-table relationship graph, and
answers queries over it: stats, table lookups, relation listings, apply
order, catalog diffs, and a mermaid ER diagram. It can also serve the same
queries over HTTP for the console front end.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", defaultDir(), "Directory with domain table-set files")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "text", "Output format: text, json, summary, or mermaid")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(orderCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
