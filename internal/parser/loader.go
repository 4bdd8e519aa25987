// Package parser loads domain table-set files from disk and hands the
// typed domains to the catalog. The core never reads files itself; this is
// the collaborator that does, dispatching to the per-format converters by
// file extension.
package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"schemadesk/internal/catalog"
	"schemadesk/internal/parser/domainjson"
	"schemadesk/internal/parser/domaintoml"
)

// LoadDir reads every .json and .toml domain file directly under dir, in
// lexical file-name order so catalog declaration order is reproducible.
// Other files and subdirectories are ignored.
func LoadDir(dir string) ([]*catalog.Domain, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("parser: read domain dir %q: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".json", ".toml":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	if len(names) == 0 {
		return nil, fmt.Errorf("parser: no domain files (.json or .toml) in %q", dir)
	}

	domains := make([]*catalog.Domain, 0, len(names))
	for _, name := range names {
		d, err := ParseFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		domains = append(domains, d)
	}
	return domains, nil
}

// ParseFile parses one domain file, dispatching on its extension.
func ParseFile(path string) (*catalog.Domain, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return domainjson.NewParser().ParseFile(path)
	case ".toml":
		return domaintoml.NewParser().ParseFile(path)
	default:
		return nil, fmt.Errorf("parser: unsupported domain file %q; use .json or .toml", path)
	}
}
