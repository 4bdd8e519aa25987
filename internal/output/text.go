package output

import (
	"fmt"
	"strings"

	"schemadesk/internal/catalog"
	"schemadesk/internal/console"
	"schemadesk/internal/diff"
)

type textFormatter struct{}

// FormatCatalog renders the catalog domain by domain with each table's
// fields, the way the console's tree view lays it out.
func (textFormatter) FormatCatalog(c *console.Console) (string, error) {
	if c == nil {
		return "", nil
	}

	var sb strings.Builder
	stats := c.Stats()
	fmt.Fprintf(&sb, "Catalog: %d tables, %d fields, %d domains, %d relations\n",
		stats.Tables, stats.Fields, stats.Domains, stats.Relations)

	for _, d := range c.Domains() {
		sb.WriteString("\n")
		if label := c.DomainLabel(d); label != "" {
			fmt.Fprintf(&sb, "%s (%s)\n", d, label)
		} else {
			fmt.Fprintf(&sb, "%s\n", d)
		}
		for _, t := range c.TablesInDomain(d) {
			fmt.Fprintf(&sb, "  %s", t.Name)
			if t.Comment != "" {
				fmt.Fprintf(&sb, "  -- %s", t.Comment)
			}
			sb.WriteString("\n")
			for _, f := range t.Fields {
				fmt.Fprintf(&sb, "    %-24s %s%s\n", f.Name, f.RenderedType(), fieldFlags(f))
			}
		}
	}
	return sb.String(), nil
}

func fieldFlags(f *catalog.FieldDefinition) string {
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
	if len(flags) == 0 {
		return ""
	}
	return " [" + strings.Join(flags, ", ") + "]"
}

// FormatIssues renders findings grouped by severity, fatal first.
func (textFormatter) FormatIssues(issues catalog.Issues) (string, error) {
	if len(issues) == 0 {
		return "No findings.\n", nil
	}

	var sb strings.Builder
	for _, sev := range []catalog.Severity{catalog.SeverityFatal, catalog.SeverityError, catalog.SeverityAdvisory} {
		group := issues.Filter(sev)
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "%s (%d):\n", strings.ToUpper(string(sev)), len(group))
		for _, i := range group {
			fmt.Fprintf(&sb, "  %s\n", issueLine(i))
		}
	}
	return sb.String(), nil
}

func issueLine(i catalog.Issue) string {
	loc := i.Table
	if i.Field != "" {
		loc += "." + i.Field
	}
	if loc == "" {
		return i.Message
	}
	return fmt.Sprintf("%s: %s", loc, i.Message)
}

// FormatDiff renders a catalog diff section by section.
func (textFormatter) FormatDiff(d *diff.CatalogDiff) (string, error) {
	if d == nil || d.IsEmpty() {
		return "No changes detected.\n", nil
	}

	var sb strings.Builder
	for _, t := range d.AddedTables {
		fmt.Fprintf(&sb, "+ table %s (%d fields)\n", t.Name, len(t.Fields))
	}
	for _, t := range d.RemovedTables {
		fmt.Fprintf(&sb, "- table %s (%d fields)\n", t.Name, len(t.Fields))
	}
	for _, td := range d.ModifiedTables {
		fmt.Fprintf(&sb, "~ table %s\n", td.Name)
		for _, ch := range td.TableChanges {
			fmt.Fprintf(&sb, "    %s: %q -> %q\n", ch.Property, ch.Old, ch.New)
		}
		for _, f := range td.AddedFields {
			fmt.Fprintf(&sb, "  + field %s %s\n", f.Name, f.RenderedType())
		}
		for _, f := range td.RemovedFields {
			fmt.Fprintf(&sb, "  - field %s %s\n", f.Name, f.RenderedType())
		}
		for _, fd := range td.ModifiedFields {
			fmt.Fprintf(&sb, "  ~ field %s\n", fd.Name)
			for _, ch := range fd.Changes {
				fmt.Fprintf(&sb, "      %s: %q -> %q\n", ch.Property, ch.Old, ch.New)
			}
		}
	}
	for _, r := range d.AddedRelations {
		fmt.Fprintf(&sb, "+ relation %s\n", r)
	}
	for _, r := range d.RemovedRelations {
		fmt.Fprintf(&sb, "- relation %s\n", r)
	}
	return sb.String(), nil
}
