package output

import (
	"fmt"
	"strings"

	"schemadesk/internal/catalog"
	"schemadesk/internal/console"
	"schemadesk/internal/diff"
)

type mermaidFormatter struct{}

// FormatCatalog renders the catalog as a mermaid erDiagram, the format the
// console's topology view embeds directly.
func (mermaidFormatter) FormatCatalog(c *console.Console) (string, error) {
	if c == nil {
		return "erDiagram\n", nil
	}

	var sb strings.Builder
	sb.WriteString("erDiagram\n")

	// Deduplicate table pairs; the diagram shows one line per linked pair
	// even when several columns reference the same target.
	seen := make(map[string]bool)
	for _, rel := range c.Relations() {
		key := rel.FromTable + ":" + rel.ToTable
		if seen[key] {
			continue
		}
		seen[key] = true
		fmt.Fprintf(&sb, "    %s }o--|| %s : %q\n", rel.FromTable, rel.ToTable, rel.FromColumn)
	}
	if len(seen) > 0 {
		sb.WriteString("\n")
	}

	for _, t := range c.AllTables() {
		fmt.Fprintf(&sb, "    %s {\n", t.Name)
		for _, f := range t.Fields {
			annotations := ""
			if f.PrimaryKey {
				annotations = " PK"
			}
			if isForeignKey(t, f.Name) {
				annotations += " FK"
			}
			fmt.Fprintf(&sb, "        %s %s%s\n", mermaidType(f), f.Name, annotations)
		}
		sb.WriteString("    }\n\n")
	}
	return sb.String(), nil
}

func isForeignKey(t *catalog.TableDefinition, field string) bool {
	for _, col := range t.Columns {
		if col.Name == field && col.FK {
			return true
		}
	}
	return false
}

// mermaidType renders a field type as a single mermaid-safe token: no
// parentheses, no spaces.
func mermaidType(f *catalog.FieldDefinition) string {
	t := strings.ToLower(f.Type)
	if i := strings.IndexAny(t, " ("); i >= 0 {
		t = t[:i]
	}
	return t
}

func (mermaidFormatter) FormatIssues(catalog.Issues) (string, error) {
	return "", fmt.Errorf("mermaid format renders the catalog only")
}

func (mermaidFormatter) FormatDiff(*diff.CatalogDiff) (string, error) {
	return "", fmt.Errorf("mermaid format renders the catalog only")
}
