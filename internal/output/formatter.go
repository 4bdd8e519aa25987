// Package output provides a set of formatters for the catalog, validation
// findings, and catalog diffs. Four formats: human-readable text, JSON, a
// compact summary, and a mermaid ER diagram.
package output

import (
	"fmt"
	"strings"

	"schemadesk/internal/catalog"
	"schemadesk/internal/console"
	"schemadesk/internal/diff"
)

// Format is an enum type representing the available output formats.
type Format string

const (
	FormatText    Format = "text"
	FormatJSON    Format = "json"
	FormatSummary Format = "summary"
	FormatMermaid Format = "mermaid"
)

// Formatter is an interface for formatting the read-only catalog surfaces.
type Formatter interface {
	FormatCatalog(*console.Console) (string, error)
	FormatIssues(catalog.Issues) (string, error)
	FormatDiff(*diff.CatalogDiff) (string, error)
}

// NewFormatter creates a new Formatter instance based on the given name.
// If no format is specified, defaults to text.
func NewFormatter(name string) (Formatter, error) {
	format := Format(strings.ToLower(strings.TrimSpace(name)))
	switch format {
	case "", FormatText:
		return textFormatter{}, nil
	case FormatJSON:
		return jsonFormatter{}, nil
	case FormatSummary:
		return summaryFormatter{}, nil
	case FormatMermaid:
		return mermaidFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s; use 'text', 'json', 'summary', or 'mermaid'", name)
	}
}
