package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"schemadesk/internal/catalog"
	"schemadesk/internal/output"
)

var checkStrict bool

func init() {
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "Exit non-zero on error-severity findings too")
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the catalog and report findings",
	Long: `Check loads every domain file, builds the catalog and relationship graph,
and reports the findings. Fatal findings (duplicate tables, dangling
relations) always fail the command; with --strict, error-severity findings
fail it as well. Advisories never do.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		errorColor := color.New(color.FgRed, color.Bold)

		cons, err := loadConsole(flagDir)
		if err != nil {
			errorColor.Fprintf(cmd.ErrOrStderr(), "catalog build failed: %v\n", err)
			return fmt.Errorf("catalog has fatal findings")
		}
		issues := cons.Issues()

		if flagFormat == string(output.FormatText) {
			printIssuesColored(cmd, issues)
		} else {
			formatter, err := output.NewFormatter(flagFormat)
			if err != nil {
				return err
			}
			rendered, err := formatter.FormatIssues(issues)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), rendered)
		}

		if checkStrict && issues.HasErrors() {
			return fmt.Errorf("%d error finding(s) with --strict", issues.Count(catalog.SeverityError))
		}
		return nil
	},
}

func printIssuesColored(cmd *cobra.Command, issues catalog.Issues) {
	successColor := color.New(color.FgGreen, color.Bold)
	errorColor := color.New(color.FgRed, color.Bold)
	warningColor := color.New(color.FgYellow)
	infoColor := color.New(color.FgCyan)

	out := cmd.OutOrStdout()
	if len(issues) == 0 {
		successColor.Fprintln(out, "✓ catalog is clean")
		return
	}

	for _, sev := range []catalog.Severity{catalog.SeverityFatal, catalog.SeverityError, catalog.SeverityAdvisory} {
		for _, issue := range issues.Filter(sev) {
			switch sev {
			case catalog.SeverityFatal:
				errorColor.Fprintln(out, issue.String())
			case catalog.SeverityError:
				warningColor.Fprintln(out, issue.String())
			default:
				infoColor.Fprintln(out, issue.String())
			}
		}
	}
	fmt.Fprintf(out, "\n%d finding(s): %d error, %d advisory\n",
		len(issues), issues.Count(catalog.SeverityError), issues.Count(catalog.SeverityAdvisory))
}
