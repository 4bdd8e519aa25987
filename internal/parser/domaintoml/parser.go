// Package domaintoml parses hand-maintained domain table-set files written
// in TOML. It mirrors the JSON loader but with snake_case keys and a
// tolerant `default` that accepts string, bool, or number values, which it
// normalizes to the raw string form the catalog stores.
package domaintoml

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"

	"schemadesk/internal/catalog"
)

// domainFile is the top-level TOML document.
type domainFile struct {
	Domain    string         `toml:"domain"`
	Label     string         `toml:"label"`
	Tables    []tomlTable    `toml:"tables"`
	Relations []tomlRelation `toml:"relations"`
}

// tomlTable maps [[tables]].
type tomlTable struct {
	Name        string       `toml:"name"`
	Comment     string       `toml:"comment"`
	DisplayName string       `toml:"display_name"`
	Description string       `toml:"description"`
	Icon        string       `toml:"icon"`
	Engine      string       `toml:"engine"`
	Charset     string       `toml:"charset"`
	Collation   string       `toml:"collation"`
	Fields      []tomlField  `toml:"fields"`
	Columns     []tomlColumn `toml:"columns"`
}

// tomlField maps [[tables.fields]].
type tomlField struct {
	Name          string `toml:"name"`
	Type          string `toml:"type"`
	Length        string `toml:"length"`
	Nullable      bool   `toml:"nullable"`
	PrimaryKey    bool   `toml:"primary_key"`
	AutoIncrement bool   `toml:"auto_increment"`
	Unique        bool   `toml:"unique"`
	Comment       string `toml:"comment"`

	// Default accepts string, bool, or number from TOML. The converter
	// normalizes everything to a string.
	Default any `toml:"default"`
}

// tomlColumn maps [[tables.columns]].
type tomlColumn struct {
	Name  string `toml:"name"`
	Type  string `toml:"type"`
	PK    bool   `toml:"pk"`
	FK    bool   `toml:"fk"`
	FkRef string `toml:"fk_ref"`
}

// tomlRelation maps [[relations]].
type tomlRelation struct {
	FromTable  string `toml:"from_table"`
	FromColumn string `toml:"from_column"`
	ToTable    string `toml:"to_table"`
	ToColumn   string `toml:"to_column"`
	Kind       string `toml:"kind"`
}

// Parser reads TOML domain files.
type Parser struct{}

// NewParser creates a new TOML domain parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile opens the file at the given path and parses it as a TOML domain.
func (p *Parser) ParseFile(path string) (*catalog.Domain, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("domaintoml: open file %q: %w", path, err)
	}
	defer f.Close()

	return p.Parse(f)
}

// Parse reads TOML content from reader and returns the corresponding domain.
func (p *Parser) Parse(r io.Reader) (*catalog.Domain, error) {
	var df domainFile
	if _, err := toml.NewDecoder(r).Decode(&df); err != nil {
		return nil, fmt.Errorf("domaintoml: decode error: %w", err)
	}

	return convert(&df)
}

func convert(df *domainFile) (*catalog.Domain, error) {
	if df.Domain == "" {
		return nil, fmt.Errorf("domaintoml: missing domain name")
	}

	d := &catalog.Domain{
		Name:   df.Domain,
		Label:  df.Label,
		Tables: make([]*catalog.TableDefinition, 0, len(df.Tables)),
	}

	for i := range df.Tables {
		t, err := convertTable(&df.Tables[i])
		if err != nil {
			return nil, fmt.Errorf("domaintoml: table %q: %w", df.Tables[i].Name, err)
		}
		d.Tables = append(d.Tables, t)
	}

	for _, tr := range df.Relations {
		if tr.FromTable == "" || tr.FromColumn == "" || tr.ToTable == "" {
			return nil, fmt.Errorf("domaintoml: relation needs from_table, from_column, and to_table")
		}
		if tr.Kind != "" && !catalog.ValidRelationKind(tr.Kind) {
			return nil, fmt.Errorf("domaintoml: relation %s.%s has unknown kind %q", tr.FromTable, tr.FromColumn, tr.Kind)
		}
		d.Relations = append(d.Relations, catalog.RawRelation{
			FromTable:  tr.FromTable,
			FromColumn: tr.FromColumn,
			ToTable:    tr.ToTable,
			ToColumn:   tr.ToColumn,
			Kind:       catalog.RelationKind(tr.Kind),
		})
	}

	return d, nil
}

func convertTable(tt *tomlTable) (*catalog.TableDefinition, error) {
	if tt.Name == "" {
		return nil, fmt.Errorf("table name is empty")
	}

	t := &catalog.TableDefinition{
		Name:        tt.Name,
		Comment:     tt.Comment,
		DisplayName: tt.DisplayName,
		Description: tt.Description,
		Icon:        tt.Icon,
		Engine:      tt.Engine,
		Charset:     tt.Charset,
		Collation:   tt.Collation,
		Fields:      make([]*catalog.FieldDefinition, 0, len(tt.Fields)),
	}

	for i := range tt.Fields {
		tf := &tt.Fields[i]
		if tf.Name == "" {
			return nil, fmt.Errorf("field at index %d has no name", i)
		}
		if tf.Type == "" {
			return nil, fmt.Errorf("field %q has no type", tf.Name)
		}
		f := &catalog.FieldDefinition{
			Name:          tf.Name,
			Type:          tf.Type,
			Length:        tf.Length,
			Nullable:      tf.Nullable,
			PrimaryKey:    tf.PrimaryKey,
			AutoIncrement: tf.AutoIncrement,
			Unique:        tf.Unique,
			Comment:       tf.Comment,
		}
		if tf.Default != nil {
			f.DefaultVal = normalizeDefault(tf.Default)
		}
		t.Fields = append(t.Fields, f)
	}

	for _, tc := range tt.Columns {
		t.Columns = append(t.Columns, catalog.ColumnSummary{
			Name:  tc.Name,
			Type:  tc.Type,
			PK:    tc.PK,
			FK:    tc.FK,
			FkRef: tc.FkRef,
		})
	}

	return t, nil
}

// normalizeDefault renders a TOML default value as the raw string the
// catalog stores.
func normalizeDefault(v any) string {
	switch val := v.(type) {
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}
