// Package graph resolves the relations declared across the catalog into a
// validated directed graph over a finished registry. The registry must be
// complete before Build runs: every edge endpoint resolves against it, which
// is why the registry is always constructed first. Like the registry, a built
// Graph is immutable and safe for any number of concurrent readers.
package graph

import (
	"fmt"

	"schemadesk/internal/catalog"
)

// Relation is one resolved, validated edge. Unlike catalog.RawRelation the
// ToColumn is always populated, either as declared or inferred from the
// target table's primary key.
type Relation struct {
	FromTable  string               `json:"fromTable"`
	FromColumn string               `json:"fromColumn"`
	ToTable    string               `json:"toTable"`
	ToColumn   string               `json:"toColumn"`
	Kind       catalog.RelationKind `json:"kind"`
}

func (r Relation) String() string {
	return fmt.Sprintf("%s.%s -> %s.%s", r.FromTable, r.FromColumn, r.ToTable, r.ToColumn)
}

// DanglingReferenceError is the fatal build failure for a relation whose
// endpoint table does not exist in the registry.
type DanglingReferenceError struct {
	Relation     catalog.RawRelation
	MissingTable string
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("relation %s: table %q does not exist in the catalog",
		e.Relation, e.MissingTable)
}

// Graph holds the validated relationship edges with forward and reverse
// adjacency, so both "what does this table reference" and "what references
// this table" are O(1) amortized lookups.
type Graph struct {
	nodes    []string
	outgoing map[string][]Relation
	incoming map[string][]Relation
	edges    []Relation
}

// Build resolves raw relations against the registry.
//
// A relation naming a table the registry does not know is the fatal case:
// Build returns a *DanglingReferenceError and no graph. Column-level
// problems (an unresolvable fromColumn or toColumn, or a missing toColumn
// that cannot be inferred because the target has zero or several primary key
// fields) are error findings: the edge is dropped, the finding is collected,
// and the build carries on with a best-effort graph.
func Build(reg *catalog.Registry, raw []catalog.RawRelation) (*Graph, catalog.Issues, error) {
	g := &Graph{
		nodes:    make([]string, 0, reg.TableCount()),
		outgoing: make(map[string][]Relation),
		incoming: make(map[string][]Relation),
	}
	for _, t := range reg.AllTables() {
		g.nodes = append(g.nodes, t.Name)
	}

	var issues catalog.Issues
	for _, rr := range raw {
		from := reg.FindTable(rr.FromTable)
		if from == nil {
			return nil, nil, &DanglingReferenceError{Relation: rr, MissingTable: rr.FromTable}
		}
		to := reg.FindTable(rr.ToTable)
		if to == nil {
			return nil, nil, &DanglingReferenceError{Relation: rr, MissingTable: rr.ToTable}
		}

		if from.FindField(rr.FromColumn) == nil {
			issues = append(issues, edgeIssue(catalog.KindUnresolvedColumnReference, rr.FromTable, rr.FromColumn,
				fmt.Sprintf("relation %s: column %q does not exist in %q", rr, rr.FromColumn, rr.FromTable)))
			continue
		}

		toColumn, issue := resolveToColumn(to, rr)
		if issue != nil {
			issues = append(issues, *issue)
			continue
		}

		kind := rr.Kind
		if kind == "" {
			kind = catalog.RelationForeignKey
		}
		edge := Relation{
			FromTable:  rr.FromTable,
			FromColumn: rr.FromColumn,
			ToTable:    rr.ToTable,
			ToColumn:   toColumn,
			Kind:       kind,
		}
		g.edges = append(g.edges, edge)
		g.outgoing[edge.FromTable] = append(g.outgoing[edge.FromTable], edge)
		g.incoming[edge.ToTable] = append(g.incoming[edge.ToTable], edge)
	}

	return g, issues, nil
}

// edgeIssue builds one error-severity finding for a dropped edge. Graph
// construction never produces advisories.
func edgeIssue(kind catalog.IssueKind, table, field, message string) catalog.Issue {
	return catalog.Issue{
		Severity: catalog.SeverityError,
		Kind:     kind,
		Table:    table,
		Field:    field,
		Message:  message,
	}
}

// resolveToColumn resolves the target column of a relation: the declared
// column when present, the target's single primary key field otherwise.
func resolveToColumn(to *catalog.TableDefinition, rr catalog.RawRelation) (string, *catalog.Issue) {
	if rr.ToColumn != "" {
		if to.FindField(rr.ToColumn) == nil {
			i := edgeIssue(catalog.KindUnresolvedColumnReference, rr.ToTable, rr.ToColumn,
				fmt.Sprintf("relation %s: column %q does not exist in %q", rr, rr.ToColumn, rr.ToTable))
			return "", &i
		}
		return rr.ToColumn, nil
	}

	pk := to.PrimaryKeyFields()
	if len(pk) != 1 {
		i := edgeIssue(catalog.KindNoPrimaryKeyToInfer, rr.ToTable, "",
			fmt.Sprintf("relation %s: cannot infer target column, %q has %d primary key fields",
				rr, rr.ToTable, len(pk)))
		return "", &i
	}
	return pk[0].Name, nil
}

// Nodes returns every table name in the graph, in catalog declaration order.
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Outgoing returns the validated relations leaving a table. Fresh copy.
func (g *Graph) Outgoing(table string) []Relation {
	return copyEdges(g.outgoing[table])
}

// Incoming returns the validated relations pointing at a table. Fresh copy.
func (g *Graph) Incoming(table string) []Relation {
	return copyEdges(g.incoming[table])
}

// Relations returns every validated edge in declaration order. Fresh copy.
func (g *Graph) Relations() []Relation {
	return copyEdges(g.edges)
}

// RelationCount returns the number of validated edges.
func (g *Graph) RelationCount() int {
	return len(g.edges)
}

func copyEdges(edges []Relation) []Relation {
	if len(edges) == 0 {
		return nil
	}
	out := make([]Relation, len(edges))
	copy(out, edges)
	return out
}
