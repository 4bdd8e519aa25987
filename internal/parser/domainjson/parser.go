// Package domainjson parses domain table-set files in the JSON shape the
// Xilian design console exports: camelCase keys, one domain per file with
// its tables and an optional explicit relation list. The parser is a
// validating step — it rejects structurally broken files here so the
// registry only ever sees well-formed domains.
package domainjson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"schemadesk/internal/catalog"
)

// Parser reads JSON domain files.
type Parser struct{}

// NewParser creates a new JSON domain parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile opens the file at the given path and parses it as a JSON domain.
func (p *Parser) ParseFile(path string) (*catalog.Domain, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("domainjson: open file %q: %w", path, err)
	}
	defer f.Close()

	return p.Parse(f)
}

// Parse reads JSON content from reader and returns the corresponding domain.
func (p *Parser) Parse(r io.Reader) (*catalog.Domain, error) {
	var d catalog.Domain
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("domainjson: decode error: %w", err)
	}

	if err := validateDomain(&d); err != nil {
		return nil, fmt.Errorf("domainjson: %w", err)
	}
	return &d, nil
}

func validateDomain(d *catalog.Domain) error {
	if d.Name == "" {
		return fmt.Errorf("missing domain name")
	}
	for i, t := range d.Tables {
		if t == nil {
			return fmt.Errorf("domain %q: table at index %d is null", d.Name, i)
		}
		if t.Name == "" {
			return fmt.Errorf("domain %q: table at index %d has no tableName", d.Name, i)
		}
		for j, f := range t.Fields {
			if f == nil {
				return fmt.Errorf("table %q: field at index %d is null", t.Name, j)
			}
			if f.Name == "" {
				return fmt.Errorf("table %q: field at index %d has no name", t.Name, j)
			}
			if f.Type == "" {
				return fmt.Errorf("table %q: field %q has no type", t.Name, f.Name)
			}
		}
	}
	for i, rel := range d.Relations {
		if rel.FromTable == "" || rel.FromColumn == "" || rel.ToTable == "" {
			return fmt.Errorf("domain %q: relation at index %d needs fromTable, fromColumn, and toTable", d.Name, i)
		}
		if rel.Kind != "" && !catalog.ValidRelationKind(string(rel.Kind)) {
			return fmt.Errorf("domain %q: relation %s has unknown kind %q", d.Name, rel, rel.Kind)
		}
	}
	return nil
}
