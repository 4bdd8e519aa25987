// Package mysql imports an existing MySQL schema dump into the catalog. It
// parses CREATE TABLE statements offline with the TiDB parser and converts
// them into one domain table set, so a platform dump can seed the design
// console without ever touching a server. Foreign key constraints become
// inline fk annotations on the generated columns summary, which the
// registry lifts into relations.
package mysql

import (
	"fmt"
	"os"
	"strings"

	"github.com/pingcap/tidb/pkg/parser"
	"github.com/pingcap/tidb/pkg/parser/ast"
	"github.com/pingcap/tidb/pkg/parser/format"
	_ "github.com/pingcap/tidb/pkg/parser/test_driver"

	"schemadesk/internal/catalog"
)

// Importer converts CREATE TABLE dumps into catalog domains.
type Importer struct {
	p *parser.Parser
}

// NewImporter creates a new DDL importer.
func NewImporter() *Importer {
	return &Importer{p: parser.New()}
}

// ImportFile reads a .sql dump and imports it under the given domain name.
func (i *Importer) ImportFile(domain, path string) (*catalog.Domain, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mysql: read dump %q: %w", path, err)
	}
	return i.Import(domain, string(data))
}

// Import parses the dump text and returns a domain holding every CREATE
// TABLE found, in statement order. Non-DDL statements are ignored.
func (i *Importer) Import(domain, sql string) (*catalog.Domain, error) {
	if domain == "" {
		return nil, fmt.Errorf("mysql: domain name is empty")
	}

	stmts, _, err := i.p.Parse(sql, "", "")
	if err != nil {
		return nil, fmt.Errorf("mysql: parse dump: %w", err)
	}

	d := &catalog.Domain{Name: domain}
	for _, stmt := range stmts {
		create, ok := stmt.(*ast.CreateTableStmt)
		if !ok {
			continue
		}
		t, err := i.convertCreateTable(create)
		if err != nil {
			return nil, fmt.Errorf("mysql: table %q: %w", create.Table.Name.O, err)
		}
		d.Tables = append(d.Tables, t)
	}

	return d, nil
}

func (i *Importer) convertCreateTable(stmt *ast.CreateTableStmt) (*catalog.TableDefinition, error) {
	t := &catalog.TableDefinition{
		Name: stmt.Table.Name.O,
	}

	for _, opt := range stmt.Options {
		switch opt.Tp {
		case ast.TableOptionComment:
			t.Comment = opt.StrValue
		case ast.TableOptionEngine:
			t.Engine = opt.StrValue
		case ast.TableOptionCharset:
			t.Charset = opt.StrValue
		case ast.TableOptionCollate:
			t.Collation = opt.StrValue
		}
	}

	// fkRefs collects single-column foreign keys so the generated summary
	// can carry the fk annotation the console renders.
	fkRefs := make(map[string]string)

	for _, colDef := range stmt.Cols {
		f := &catalog.FieldDefinition{
			Name:     colDef.Name.Name.O,
			Nullable: true,
		}
		f.Type, f.Length = splitType(colDef.Tp.String())

		for _, opt := range colDef.Options {
			switch opt.Tp {
			case ast.ColumnOptionNotNull:
				f.Nullable = false
			case ast.ColumnOptionNull:
				f.Nullable = true
			case ast.ColumnOptionPrimaryKey:
				f.PrimaryKey = true
				f.Nullable = false
			case ast.ColumnOptionAutoIncrement:
				f.AutoIncrement = true
			case ast.ColumnOptionUniqKey:
				f.Unique = true
			case ast.ColumnOptionDefaultValue:
				if s := i.exprToString(opt.Expr); s != nil {
					f.DefaultVal = *s
				}
			case ast.ColumnOptionComment:
				if s := i.exprToString(opt.Expr); s != nil {
					f.Comment = strings.Trim(*s, "'")
				}
			case ast.ColumnOptionReference:
				if ref := singleColumnRef(opt.Refer); ref != "" {
					fkRefs[f.Name] = ref
				}
			}
		}
		t.Fields = append(t.Fields, f)
	}

	for _, constraint := range stmt.Constraints {
		switch constraint.Tp {
		case ast.ConstraintPrimaryKey:
			for _, key := range constraint.Keys {
				if f := t.FindField(key.Column.Name.O); f != nil {
					f.PrimaryKey = true
					f.Nullable = false
				}
			}
		case ast.ConstraintUniq, ast.ConstraintUniqKey, ast.ConstraintUniqIndex:
			if len(constraint.Keys) == 1 {
				if f := t.FindField(constraint.Keys[0].Column.Name.O); f != nil {
					f.Unique = true
				}
			}
		case ast.ConstraintForeignKey:
			if len(constraint.Keys) != 1 {
				continue
			}
			if ref := singleColumnRef(constraint.Refer); ref != "" {
				fkRefs[constraint.Keys[0].Column.Name.O] = ref
			}
		}
	}

	for _, f := range t.Fields {
		col := catalog.ColumnSummary{
			Name: f.Name,
			Type: f.RenderedType(),
			PK:   f.PrimaryKey,
		}
		if ref, ok := fkRefs[f.Name]; ok {
			col.FK = true
			col.FkRef = ref
		}
		t.Columns = append(t.Columns, col)
	}

	return t, nil
}

// singleColumnRef renders a referenced "table.column" for single-column
// foreign keys; multi-column keys have no summary representation.
func singleColumnRef(refer *ast.ReferenceDef) string {
	if refer == nil || refer.Table == nil {
		return ""
	}
	if len(refer.IndexPartSpecifications) != 1 {
		return refer.Table.Name.O
	}
	spec := refer.IndexPartSpecifications[0]
	if spec.Column == nil {
		return refer.Table.Name.O
	}
	return refer.Table.Name.O + "." + spec.Column.Name.O
}

func (i *Importer) exprToString(expr ast.ExprNode) *string {
	if expr == nil {
		return nil
	}
	var sb strings.Builder
	restoreCtx := format.NewRestoreCtx(format.DefaultRestoreFlags, &sb)
	if err := expr.Restore(restoreCtx); err != nil {
		return nil
	}
	s := sb.String()

	// The restorer prefixes string literals with a charset introducer
	// (_UTF8MB4'...'); keep just the quoted literal.
	if start := strings.Index(s, "'"); start != -1 {
		if end := strings.LastIndex(s, "'"); end > start {
			s = s[start : end+1]
		}
	}
	return &s
}

// splitType splits a rendered MySQL type into the base type and its
// length/precision spec: "varchar(64)" -> ("VARCHAR", "64"),
// "decimal(10,2)" -> ("DECIMAL", "10,2"), "text" -> ("TEXT", ""). Modifiers
// after the spec ("int(11) unsigned") fold into the base type.
func splitType(raw string) (base, length string) {
	raw = strings.TrimSpace(raw)
	open := strings.Index(raw, "(")
	end := strings.LastIndex(raw, ")")
	if open < 0 || end <= open {
		return strings.ToUpper(raw), ""
	}
	base = strings.ToUpper(strings.TrimSpace(raw[:open]))
	length = raw[open+1 : end]
	if rest := strings.TrimSpace(raw[end+1:]); rest != "" {
		base += " " + strings.ToUpper(rest)
	}
	return base, length
}
