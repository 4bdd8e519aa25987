package main

import (
	"schemadesk/internal/catalog"
	"schemadesk/internal/console"
	"schemadesk/internal/graph"
	"schemadesk/internal/parser"
)

// loadConsole runs the full pipeline over a domain directory and returns the
// query surface. Fatal findings abort with an error; error and advisory
// findings travel with the console.
func loadConsole(dir string) (*console.Console, error) {
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

	return console.New(reg, g, issues), nil
}
