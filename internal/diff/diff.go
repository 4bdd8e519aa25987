// Package diff compares two built catalog snapshots and reports what
// changed: tables added or removed, field-level changes inside surviving
// tables, and relation deltas. It is the data source for the console's
// "what changed between two catalog versions" view; it reads both
// registries and generates nothing else.
package diff

import (
	"sort"

	"schemadesk/internal/catalog"
)

// CatalogDiff represents the differences between two catalog snapshots.
type CatalogDiff struct {
	AddedTables      []*catalog.TableDefinition
	RemovedTables    []*catalog.TableDefinition
	ModifiedTables   []*TableDiff
	AddedRelations   []catalog.RawRelation
	RemovedRelations []catalog.RawRelation
}

// TableDiff represents the differences between two versions of one table.
type TableDiff struct {
	Name           string
	TableChanges   []*PropertyChange
	AddedFields    []*catalog.FieldDefinition
	RemovedFields  []*catalog.FieldDefinition
	ModifiedFields []*FieldDiff
}

// FieldDiff represents the property-level differences of one field.
type FieldDiff struct {
	Name    string
	Old     *catalog.FieldDefinition
	New     *catalog.FieldDefinition
	Changes []*PropertyChange
}

// PropertyChange is one changed property, rendered as strings for display.
type PropertyChange struct {
	Property string
	Old      string
	New      string
}

// IsEmpty reports whether the diff found no changes at all.
func (d *CatalogDiff) IsEmpty() bool {
	return len(d.AddedTables) == 0 && len(d.RemovedTables) == 0 &&
		len(d.ModifiedTables) == 0 &&
		len(d.AddedRelations) == 0 && len(d.RemovedRelations) == 0
}

// Diff compares two registries, old to new. Table names match exactly; the
// catalog join key is case-sensitive, so a renamed-in-case table counts as
// removed plus added.
func Diff(oldReg, newReg *catalog.Registry) *CatalogDiff {
	d := &CatalogDiff{}

	oldTables := mapTablesByName(oldReg.AllTables())
	newTables := mapTablesByName(newReg.AllTables())

	for name, nt := range newTables {
		ot, ok := oldTables[name]
		if !ok {
			d.AddedTables = append(d.AddedTables, nt)
			continue
		}
		if td := compareTable(ot, nt, oldReg.DomainOf(name), newReg.DomainOf(name)); td != nil {
			d.ModifiedTables = append(d.ModifiedTables, td)
		}
	}
	for name, ot := range oldTables {
		if _, ok := newTables[name]; !ok {
			d.RemovedTables = append(d.RemovedTables, ot)
		}
	}

	d.AddedRelations, d.RemovedRelations = diffRelations(
		oldReg.DeclaredRelations(), newReg.DeclaredRelations())

	d.sort()
	return d
}

func diffRelations(oldRels, newRels []catalog.RawRelation) (added, removed []catalog.RawRelation) {
	oldSet := make(map[catalog.RawRelation]bool, len(oldRels))
	for _, r := range oldRels {
		oldSet[r] = true
	}
	newSet := make(map[catalog.RawRelation]bool, len(newRels))
	for _, r := range newRels {
		newSet[r] = true
	}

	for _, r := range newRels {
		if !oldSet[r] {
			added = append(added, r)
		}
	}
	for _, r := range oldRels {
		if !newSet[r] {
			removed = append(removed, r)
		}
	}
	return added, removed
}

func mapTablesByName(tables []*catalog.TableDefinition) map[string]*catalog.TableDefinition {
	m := make(map[string]*catalog.TableDefinition, len(tables))
	for _, t := range tables {
		m[t.Name] = t
	}
	return m
}

// sort orders every slice by name so output is deterministic regardless of
// map iteration.
func (d *CatalogDiff) sort() {
	sortTables(d.AddedTables)
	sortTables(d.RemovedTables)
	sort.Slice(d.ModifiedTables, func(i, j int) bool {
		return d.ModifiedTables[i].Name < d.ModifiedTables[j].Name
	})
}

func sortTables(tables []*catalog.TableDefinition) {
	sort.Slice(tables, func(i, j int) bool {
		return tables[i].Name < tables[j].Name
	})
}
