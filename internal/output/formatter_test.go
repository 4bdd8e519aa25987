package output

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schemadesk/internal/catalog"
	"schemadesk/internal/console"
	"schemadesk/internal/diff"
	"schemadesk/internal/graph"
)

func fixtureConsole(t *testing.T) *console.Console {
	t.Helper()

	domains := []*catalog.Domain{
		{
			Name:  "alarm-center",
			Label: "告警中心",
			Tables: []*catalog.TableDefinition{
				{
					Name:    "alarm_rules",
					Comment: "告警规则",
					Fields: []*catalog.FieldDefinition{
						{Name: "rule_id", Type: "INT", PrimaryKey: true, AutoIncrement: true, Comment: "规则ID"},
						{Name: "rule_name", Type: "VARCHAR", Length: "128", Comment: "规则名称", DefaultVal: "''"},
					},
					Columns: []catalog.ColumnSummary{
						{Name: "rule_id", Type: "INT", PK: true},
						{Name: "rule_name", Type: "VARCHAR(128)"},
					},
				},
				{
					Name:    "alarm_records",
					Comment: "告警记录",
					Fields: []*catalog.FieldDefinition{
						{Name: "id", Type: "BIGINT", PrimaryKey: true, AutoIncrement: true, Comment: "主键"},
						{Name: "rule_id", Type: "INT", Comment: "触发规则", DefaultVal: "0"},
					},
					Columns: []catalog.ColumnSummary{
						{Name: "id", Type: "BIGINT", PK: true},
						{Name: "rule_id", Type: "INT", FK: true, FkRef: "alarm_rules.rule_id"},
					},
				},
			},
		},
	}

	reg, issues, err := catalog.Build(domains)
	require.NoError(t, err)
	g, graphIssues, err := graph.Build(reg, reg.DeclaredRelations())
	require.NoError(t, err)
	return console.New(reg, g, append(issues, graphIssues...))
}

func TestNewFormatter(t *testing.T) {
	for _, name := range []string{"", "text", "json", "summary", "mermaid", " JSON "} {
		f, err := NewFormatter(name)
		require.NoError(t, err, name)
		assert.NotNil(t, f)
	}

	_, err := NewFormatter("yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestTextCatalog(t *testing.T) {
	f, _ := NewFormatter("text")
	out, err := f.FormatCatalog(fixtureConsole(t))
	require.NoError(t, err)

	assert.Contains(t, out, "Catalog: 2 tables, 4 fields, 1 domains, 1 relations")
	assert.Contains(t, out, "alarm-center (告警中心)")
	assert.Contains(t, out, "alarm_rules")
	assert.Contains(t, out, "VARCHAR(128)")
	assert.Contains(t, out, "[PK, AUTO, NOT NULL]")
}

func TestTextIssuesGroupedBySeverity(t *testing.T) {
	f, _ := NewFormatter("text")
	issues := catalog.Issues{
		{Severity: catalog.SeverityAdvisory, Kind: catalog.KindMissingComment, Table: "t1", Message: "table has no comment"},
		{Severity: catalog.SeverityError, Kind: catalog.KindPrimaryKeyMismatch, Table: "t1", Field: "id", Message: "pk mismatch"},
	}
	out, err := f.FormatIssues(issues)
	require.NoError(t, err)

	assert.Contains(t, out, "ERROR (1):")
	assert.Contains(t, out, "t1.id: pk mismatch")
	assert.Contains(t, out, "ADVISORY (1):")
	// errors come before advisories
	assert.Less(t, strings.Index(out, "ERROR"), strings.Index(out, "ADVISORY"))

	empty, err := f.FormatIssues(nil)
	require.NoError(t, err)
	assert.Equal(t, "No findings.\n", empty)
}

func TestJSONCatalogRoundTrips(t *testing.T) {
	f, _ := NewFormatter("json")
	out, err := f.FormatCatalog(fixtureConsole(t))
	require.NoError(t, err)

	var payload struct {
		Format  string `json:"format"`
		Summary struct {
			Tables    int `json:"tables"`
			Relations int `json:"relations"`
		} `json:"summary"`
		Domains []struct {
			Name   string            `json:"name"`
			Tables []json.RawMessage `json:"tables"`
		} `json:"domains"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Equal(t, "json", payload.Format)
	assert.Equal(t, 2, payload.Summary.Tables)
	assert.Equal(t, 1, payload.Summary.Relations)
	require.Len(t, payload.Domains, 1)
	assert.Len(t, payload.Domains[0].Tables, 2)
}

func TestJSONIssues(t *testing.T) {
	f, _ := NewFormatter("json")
	out, err := f.FormatIssues(catalog.Issues{
		{Severity: catalog.SeverityFatal, Kind: catalog.KindDuplicateTable, Table: "data_slices", Message: "dup"},
	})
	require.NoError(t, err)
	assert.Contains(t, out, `"fatal": 1`)
	assert.Contains(t, out, `"duplicate-table"`)
}

func TestSummaryCatalog(t *testing.T) {
	f, _ := NewFormatter("summary")
	out, err := f.FormatCatalog(fixtureConsole(t))
	require.NoError(t, err)

	assert.Contains(t, out, "Tables:    2")
	assert.Contains(t, out, "Relations: 1")
	assert.Contains(t, out, "alarm-center")
}

func TestSummaryDiff(t *testing.T) {
	f, _ := NewFormatter("summary")

	out, err := f.FormatDiff(&diff.CatalogDiff{
		AddedTables: []*catalog.TableDefinition{
			{Name: "new_tbl", Fields: []*catalog.FieldDefinition{{Name: "id", Type: "INT"}}},
		},
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Tables:    +1, ~0, -0")
	assert.Contains(t, out, "Fields:    +1, ~0, -0")

	empty, err := f.FormatDiff(&diff.CatalogDiff{})
	require.NoError(t, err)
	assert.Equal(t, "No changes detected.\n", empty)
}

func TestMermaidCatalog(t *testing.T) {
	f, _ := NewFormatter("mermaid")
	out, err := f.FormatCatalog(fixtureConsole(t))
	require.NoError(t, err)

	assert.Contains(t, out, "erDiagram")
	assert.Contains(t, out, `alarm_records }o--|| alarm_rules : "rule_id"`)
	assert.Contains(t, out, "alarm_rules {")
	assert.Contains(t, out, "int rule_id PK")
	assert.Contains(t, out, "int rule_id FK")
	assert.Contains(t, out, "varchar rule_name")

	_, err = f.FormatIssues(nil)
	require.Error(t, err)
	_, err = f.FormatDiff(nil)
	require.Error(t, err)
}

func TestTextDiff(t *testing.T) {
	f, _ := NewFormatter("text")

	d := &diff.CatalogDiff{
		ModifiedTables: []*diff.TableDiff{
			{
				Name: "alarm_rules",
				ModifiedFields: []*diff.FieldDiff{
					{
						Name: "rule_name",
						Changes: []*diff.PropertyChange{
							{Property: "type", Old: "VARCHAR(128)", New: "VARCHAR(255)"},
						},
					},
				},
			},
		},
		RemovedRelations: []catalog.RawRelation{
			{FromTable: "alarm_records", FromColumn: "rule_id", ToTable: "alarm_rules", ToColumn: "rule_id"},
		},
	}
	out, err := f.FormatDiff(d)
	require.NoError(t, err)
	assert.Contains(t, out, "~ table alarm_rules")
	assert.Contains(t, out, `type: "VARCHAR(128)" -> "VARCHAR(255)"`)
	assert.Contains(t, out, "- relation alarm_records.rule_id -> alarm_rules.rule_id")
}
