package catalog

import (
	"fmt"
)

// Registry is the aggregated, deduplicated catalog of every table definition
// across all domains. It is built once by Build and read-only afterward, so
// any number of concurrent readers may query it without coordination.
type Registry struct {
	tables         map[string]*TableDefinition
	tableDomain    map[string]string
	domainOrder    []string
	domainLabels   map[string]string
	tablesByDomain map[string][]*TableDefinition
	relations      []RawRelation
	totalFields    int
}

// Build merges the given domain sets into a Registry, in declaration order.
//
// A table name collision is the one fatal construction failure: Build returns
// a *DuplicateTableError and no registry rather than overwriting the earlier
// definition, which would silently corrupt every downstream count. Per-table
// consistency findings of error and advisory severity are collected and
// returned alongside the registry; they never block construction.
//
// Build never mutates its input.
func Build(domains []*Domain) (*Registry, Issues, error) {
	reg := &Registry{
		tables:         make(map[string]*TableDefinition),
		tableDomain:    make(map[string]string),
		domainLabels:   make(map[string]string),
		tablesByDomain: make(map[string][]*TableDefinition),
	}
	var issues Issues

	for di, d := range domains {
		if d == nil {
			return nil, nil, fmt.Errorf("domain set at index %d is nil", di)
		}
		if d.Name == "" {
			return nil, nil, fmt.Errorf("domain set at index %d has no name", di)
		}

		if _, seen := reg.tablesByDomain[d.Name]; !seen {
			reg.domainOrder = append(reg.domainOrder, d.Name)
			reg.tablesByDomain[d.Name] = nil
		}
		if d.Label != "" {
			reg.domainLabels[d.Name] = d.Label
		}

		for ti, t := range d.Tables {
			if t == nil {
				return nil, nil, fmt.Errorf("domain %q: table at index %d is nil", d.Name, ti)
			}
			if t.Name == "" {
				return nil, nil, fmt.Errorf("domain %q: table at index %d has an empty name", d.Name, ti)
			}
			if first, exists := reg.tableDomain[t.Name]; exists {
				return nil, nil, &DuplicateTableError{
					TableName:    t.Name,
					FirstDomain:  first,
					SecondDomain: d.Name,
				}
			}

			reg.tables[t.Name] = t
			reg.tableDomain[t.Name] = d.Name
			reg.tablesByDomain[d.Name] = append(reg.tablesByDomain[d.Name], t)
			reg.totalFields += len(t.Fields)

			issues = append(issues, ValidateTable(t)...)
		}

		reg.relations = append(reg.relations, d.Relations...)
		for _, t := range d.Tables {
			reg.relations = append(reg.relations, inlineRelations(t)...)
		}
	}

	return reg, issues, nil
}

// inlineRelations lifts fk/fkRef column summary annotations into RawRelations.
// Summaries with a missing or malformed fkRef are skipped here; the validator
// already reported them.
func inlineRelations(t *TableDefinition) []RawRelation {
	var rels []RawRelation
	for _, col := range t.Columns {
		if !col.FK {
			continue
		}
		refTable, refColumn, ok := ParseRef(col.FkRef)
		if !ok {
			continue
		}
		rels = append(rels, RawRelation{
			FromTable:  t.Name,
			FromColumn: col.Name,
			ToTable:    refTable,
			ToColumn:   refColumn,
			Kind:       RelationForeignKey,
		})
	}
	return rels
}

// FindTable returns the table with the exact given name, or nil.
func (r *Registry) FindTable(name string) *TableDefinition {
	return r.tables[name]
}

// Domains returns the domain names in first-declaration order.
func (r *Registry) Domains() []string {
	out := make([]string, len(r.domainOrder))
	copy(out, r.domainOrder)
	return out
}

// DomainLabel returns the display label declared for a domain, or "".
func (r *Registry) DomainLabel(domain string) string {
	return r.domainLabels[domain]
}

// TablesInDomain returns the domain's tables in declaration order. The
// returned slice is a fresh copy, safe to iterate repeatedly or mutate.
func (r *Registry) TablesInDomain(domain string) []*TableDefinition {
	tables := r.tablesByDomain[domain]
	if len(tables) == 0 {
		return nil
	}
	out := make([]*TableDefinition, len(tables))
	copy(out, tables)
	return out
}

// AllTables returns every table, grouped by domain declaration order and in
// declaration order within each domain.
func (r *Registry) AllTables() []*TableDefinition {
	out := make([]*TableDefinition, 0, len(r.tables))
	for _, d := range r.domainOrder {
		out = append(out, r.tablesByDomain[d]...)
	}
	return out
}

// DomainOf returns the domain a table was declared in, or "".
func (r *Registry) DomainOf(table string) string {
	return r.tableDomain[table]
}

// TableCount returns the number of distinct tables in the catalog.
func (r *Registry) TableCount() int {
	return len(r.tables)
}

// FieldCount returns the total number of fields across every table.
func (r *Registry) FieldCount() int {
	return r.totalFields
}

// DomainCount returns the number of distinct domains.
func (r *Registry) DomainCount() int {
	return len(r.domainOrder)
}

// TableCountIn returns the number of tables declared in one domain.
func (r *Registry) TableCountIn(domain string) int {
	return len(r.tablesByDomain[domain])
}

// FieldCountIn returns the total field count of one domain's tables.
func (r *Registry) FieldCountIn(domain string) int {
	n := 0
	for _, t := range r.tablesByDomain[domain] {
		n += len(t.Fields)
	}
	return n
}

// DeclaredRelations returns every relation declared across the catalog:
// each domain's explicit relation list followed by the relations lifted from
// its tables' fk column annotations, in declaration order. The slice is a
// fresh copy.
func (r *Registry) DeclaredRelations() []RawRelation {
	out := make([]RawRelation, len(r.relations))
	copy(out, r.relations)
	return out
}
