// Package console is the read-only query surface the presentation layer
// talks to: counts for the status bar, table lookups for the detail views,
// relation queries for the topology rendering. It never rebuilds anything;
// a rebuild produces a new Console and the caller swaps the reference.
package console

import (
	"schemadesk/internal/catalog"
	"schemadesk/internal/graph"
)

// Console bundles a finished registry and relationship graph with the
// findings collected while building them.
type Console struct {
	reg    *catalog.Registry
	g      *graph.Graph
	issues catalog.Issues
}

// New wraps an already-built registry and graph. issues are the combined
// findings from registry build, hint lint, and graph build, in that order.
func New(reg *catalog.Registry, g *graph.Graph, issues catalog.Issues) *Console {
	return &Console{reg: reg, g: g, issues: issues}
}

// DomainStats is the per-domain slice of the status bar numbers.
type DomainStats struct {
	Name   string `json:"name"`
	Label  string `json:"label,omitempty"`
	Tables int    `json:"tables"`
	Fields int    `json:"fields"`
}

// Stats is the full aggregate summary of the catalog.
type Stats struct {
	Tables    int           `json:"tables"`
	Fields    int           `json:"fields"`
	Domains   int           `json:"domains"`
	Relations int           `json:"relations"`
	PerDomain []DomainStats `json:"perDomain"`
}

// TableRelations pairs both edge directions of one table.
type TableRelations struct {
	Outgoing []graph.Relation `json:"outgoing"`
	Incoming []graph.Relation `json:"incoming"`
}

func (c *Console) TotalTableCount() int { return c.reg.TableCount() }
func (c *Console) TotalFieldCount() int { return c.reg.FieldCount() }
func (c *Console) DomainCount() int     { return c.reg.DomainCount() }
func (c *Console) RelationCount() int   { return c.g.RelationCount() }

// Stats computes the aggregate summary, with per-domain rows in domain
// declaration order.
func (c *Console) Stats() Stats {
	s := Stats{
		Tables:    c.reg.TableCount(),
		Fields:    c.reg.FieldCount(),
		Domains:   c.reg.DomainCount(),
		Relations: c.g.RelationCount(),
	}
	for _, d := range c.reg.Domains() {
		s.PerDomain = append(s.PerDomain, DomainStats{
			Name:   d,
			Label:  c.reg.DomainLabel(d),
			Tables: c.reg.TableCountIn(d),
			Fields: c.reg.FieldCountIn(d),
		})
	}
	return s
}

// GetTable looks up one table by its exact, case-sensitive name.
func (c *Console) GetTable(name string) (*catalog.TableDefinition, bool) {
	t := c.reg.FindTable(name)
	return t, t != nil
}

// Domains returns the domain names in declaration order.
func (c *Console) Domains() []string {
	return c.reg.Domains()
}

// DomainLabel returns the display label declared for a domain, or "".
func (c *Console) DomainLabel(domain string) string {
	return c.reg.DomainLabel(domain)
}

// TablesInDomain returns one domain's tables in declaration order.
func (c *Console) TablesInDomain(domain string) []*catalog.TableDefinition {
	return c.reg.TablesInDomain(domain)
}

// AllTables returns every table in catalog order.
func (c *Console) AllTables() []*catalog.TableDefinition {
	return c.reg.AllTables()
}

// DomainOf returns the domain a table was declared in, or "".
func (c *Console) DomainOf(table string) string {
	return c.reg.DomainOf(table)
}

// RelationsFor returns both edge directions of one table.
func (c *Console) RelationsFor(table string) TableRelations {
	return TableRelations{
		Outgoing: c.g.Outgoing(table),
		Incoming: c.g.Incoming(table),
	}
}

// Relations returns every validated relation in the catalog.
func (c *Console) Relations() []graph.Relation {
	return c.g.Relations()
}

// Graph exposes the relationship graph for traversal queries.
func (c *Console) Graph() *graph.Graph {
	return c.g
}

// Registry exposes the underlying registry, e.g. for diffing two catalogs.
func (c *Console) Registry() *catalog.Registry {
	return c.reg
}

// Issues returns the findings collected at build time. Fresh copy.
func (c *Console) Issues() catalog.Issues {
	if len(c.issues) == 0 {
		return nil
	}
	out := make(catalog.Issues, len(c.issues))
	copy(out, c.issues)
	return out
}
