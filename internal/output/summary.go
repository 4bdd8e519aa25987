package output

import (
	"fmt"
	"strings"

	"schemadesk/internal/catalog"
	"schemadesk/internal/console"
	"schemadesk/internal/diff"
)

type summaryFormatter struct{}

// FormatCatalog formats the catalog as a compact summary.
// Example output:
//
//	Tables:    21
//	Fields:    187
//	Domains:   5
//	Relations: 12
func (summaryFormatter) FormatCatalog(c *console.Console) (string, error) {
	if c == nil {
		return "Empty catalog.\n", nil
	}

	var sb strings.Builder
	stats := c.Stats()

	sb.WriteString("Catalog Summary\n")
	sb.WriteString("===============\n\n")
	fmt.Fprintf(&sb, "Tables:    %d\n", stats.Tables)
	fmt.Fprintf(&sb, "Fields:    %d\n", stats.Fields)
	fmt.Fprintf(&sb, "Domains:   %d\n", stats.Domains)
	fmt.Fprintf(&sb, "Relations: %d\n", stats.Relations)

	if len(stats.PerDomain) > 0 {
		sb.WriteString("\n")
		for _, ds := range stats.PerDomain {
			name := ds.Name
			if ds.Label != "" {
				name = fmt.Sprintf("%s (%s)", ds.Name, ds.Label)
			}
			fmt.Fprintf(&sb, "  %-32s %3d tables, %4d fields\n", name, ds.Tables, ds.Fields)
		}
	}
	return sb.String(), nil
}

func (summaryFormatter) FormatIssues(issues catalog.Issues) (string, error) {
	var sb strings.Builder
	sb.WriteString("Findings Summary\n")
	sb.WriteString("================\n\n")
	fmt.Fprintf(&sb, "Fatal:    %d\n", issues.Count(catalog.SeverityFatal))
	fmt.Fprintf(&sb, "Errors:   %d\n", issues.Count(catalog.SeverityError))
	fmt.Fprintf(&sb, "Advisory: %d\n", issues.Count(catalog.SeverityAdvisory))
	return sb.String(), nil
}

func (summaryFormatter) FormatDiff(d *diff.CatalogDiff) (string, error) {
	if d == nil || d.IsEmpty() {
		return "No changes detected.\n", nil
	}

	var sb strings.Builder
	addedFields, removedFields, modifiedFields := countFields(d)

	sb.WriteString("Catalog Diff Summary\n")
	sb.WriteString("====================\n\n")
	fmt.Fprintf(&sb, "Tables:    +%d, ~%d, -%d\n", len(d.AddedTables), len(d.ModifiedTables), len(d.RemovedTables))
	fmt.Fprintf(&sb, "Fields:    +%d, ~%d, -%d\n", addedFields, modifiedFields, removedFields)
	fmt.Fprintf(&sb, "Relations: +%d, -%d\n", len(d.AddedRelations), len(d.RemovedRelations))
	return sb.String(), nil
}

func countFields(d *diff.CatalogDiff) (added, removed, modified int) {
	for _, t := range d.AddedTables {
		added += len(t.Fields)
	}
	for _, t := range d.RemovedTables {
		removed += len(t.Fields)
	}
	for _, td := range d.ModifiedTables {
		added += len(td.AddedFields)
		removed += len(td.RemovedFields)
		modified += len(td.ModifiedFields)
	}
	return
}
