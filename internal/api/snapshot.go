package api

import (
	"time"

	"schemadesk/internal/catalog"
	"schemadesk/internal/console"
	"schemadesk/internal/graph"
	"schemadesk/internal/parser"
)

// Snapshot is one complete, immutable catalog build. The server always
// publishes whole snapshots: a reload builds a fresh one off to the side
// and swaps the pointer, so readers never observe a half-built catalog.
type Snapshot struct {
	Console *console.Console
	BuiltAt time.Time
}

// buildSnapshot runs the full pipeline over the domain directory: load
// domain files, build the registry, lint comment hints, resolve the
// relationship graph. Fatal findings (duplicate table, dangling relation)
// surface as the returned error and no snapshot is produced.
func buildSnapshot(dir string) (*Snapshot, error) {
	domains, err := parser.LoadDir(dir)
	if err != nil {
		return nil, err
	}

	reg, issues, err := catalog.Build(domains)
	if err != nil {
		return nil, err
	}
	issues = append(issues, catalog.LintHints(reg)...)

	g, graphIssues, err := graph.Build(reg, reg.DeclaredRelations())
	if err != nil {
		return nil, err
	}
	issues = append(issues, graphIssues...)

	return &Snapshot{
		Console: console.New(reg, g, issues),
		BuiltAt: time.Now(),
	}, nil
}
