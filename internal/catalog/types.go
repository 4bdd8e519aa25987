// Package catalog contains the schema catalog model for the Xilian design
// console: strongly typed table definitions grouped by business domain, the
// registry that merges every domain into one deduplicated catalog, and the
// consistency validation that runs over it. Values produced here are built
// once and never mutated afterward.
package catalog

import (
	"fmt"
	"strings"
)

// FieldDefinition is the full description of one table column as authored in
// a domain file.
type FieldDefinition struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	Length        string `json:"length,omitempty"`
	Nullable      bool   `json:"nullable"`
	PrimaryKey    bool   `json:"primaryKey,omitempty"`
	AutoIncrement bool   `json:"autoIncrement,omitempty"`
	Unique        bool   `json:"unique,omitempty"`
	DefaultVal    string `json:"defaultVal,omitempty"`
	Comment       string `json:"comment,omitempty"`
}

// RenderedType returns the display type string, folding the optional length
// or precision spec into the base type: ("VARCHAR", "64") -> "VARCHAR(64)".
func (f *FieldDefinition) RenderedType() string {
	if f.Length == "" {
		return f.Type
	}
	return fmt.Sprintf("%s(%s)", f.Type, f.Length)
}

// ColumnSummary is the denormalized projection of a field used for compact
// rendering. It may abbreviate the field list but must stay consistent with
// it; the validator checks that, never assumes it.
type ColumnSummary struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	PK    bool   `json:"pk,omitempty"`
	FK    bool   `json:"fk,omitempty"`
	FkRef string `json:"fkRef,omitempty"`
}

// TableDefinition describes one relational table. Name is the catalog-wide
// join key and is matched case-sensitively everywhere.
type TableDefinition struct {
	Name        string             `json:"tableName"`
	Comment     string             `json:"tableComment,omitempty"`
	DisplayName string             `json:"displayName,omitempty"`
	Description string             `json:"description,omitempty"`
	Domain      string             `json:"domain,omitempty"`
	Icon        string             `json:"icon,omitempty"`
	Engine      string             `json:"engine,omitempty"`
	Charset     string             `json:"charset,omitempty"`
	Collation   string             `json:"collation,omitempty"`
	Fields      []*FieldDefinition `json:"fields"`
	Columns     []ColumnSummary    `json:"columns,omitempty"`
}

// FindField looks up a field by exact name.
func (t *TableDefinition) FindField(name string) *FieldDefinition {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// PrimaryKeyFields returns the fields marked primaryKey, in declaration order.
func (t *TableDefinition) PrimaryKeyFields() []*FieldDefinition {
	var pk []*FieldDefinition
	for _, f := range t.Fields {
		if f.PrimaryKey {
			pk = append(pk, f)
		}
	}
	return pk
}

func (t *TableDefinition) String() string {
	return fmt.Sprintf("Table: %s (%d fields, %d summary columns)",
		t.Name, len(t.Fields), len(t.Columns))
}

// Domain is a named business grouping of tables, e.g. "device-ops". Table
// and field counts are derived by the registry, never stored here.
type Domain struct {
	Name      string             `json:"domain"`
	Label     string             `json:"label,omitempty"`
	Tables    []*TableDefinition `json:"tables"`
	Relations []RawRelation      `json:"relations,omitempty"`
}

// RelationKind distinguishes enforced foreign keys from logical references
// that exist only in the design model.
type RelationKind string

const (
	RelationForeignKey       RelationKind = "foreign-key"
	RelationLogicalReference RelationKind = "logical-reference"
)

// ValidRelationKind reports whether k is a recognized relation kind.
func ValidRelationKind(k string) bool {
	switch RelationKind(k) {
	case RelationForeignKey, RelationLogicalReference:
		return true
	}
	return false
}

// RawRelation is a declared, not yet validated edge between two tables.
// ToColumn may be empty, in which case the target table's primary key is
// inferred during graph construction.
type RawRelation struct {
	FromTable  string       `json:"fromTable"`
	FromColumn string       `json:"fromColumn"`
	ToTable    string       `json:"toTable"`
	ToColumn   string       `json:"toColumn,omitempty"`
	Kind       RelationKind `json:"kind,omitempty"`
}

func (r RawRelation) String() string {
	to := r.ToTable
	if r.ToColumn != "" {
		to += "." + r.ToColumn
	}
	return fmt.Sprintf("%s.%s -> %s", r.FromTable, r.FromColumn, to)
}

// ParseRef splits an fkRef string into its table and column parts. Both
// "table.column" and a bare "table" are accepted; for the bare form the
// column is left empty so the graph builder infers the primary key. The
// split is at the last dot.
func ParseRef(ref string) (table, column string, ok bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", "", false
	}
	dot := strings.LastIndex(ref, ".")
	if dot < 0 {
		return ref, "", true
	}
	if dot == 0 || dot == len(ref)-1 {
		return "", "", false
	}
	return ref[:dot], ref[dot+1:], true
}
