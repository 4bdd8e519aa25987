package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(issues Issues) []IssueKind {
	out := make([]IssueKind, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.Kind)
	}
	return out
}

func findKind(t *testing.T, issues Issues, kind IssueKind) Issue {
	t.Helper()
	for _, i := range issues {
		if i.Kind == kind {
			return i
		}
	}
	t.Fatalf("no issue of kind %s in %v", kind, issues)
	return Issue{}
}

func TestValidateTableCleanDefinition(t *testing.T) {
	table := &TableDefinition{
		Name:    "edge_gateways",
		Comment: "边缘网关",
		Fields: []*FieldDefinition{
			{Name: "gateway_id", Type: "INT", PrimaryKey: true, AutoIncrement: true, Comment: "主键"},
			{Name: "gateway_sn", Type: "VARCHAR", Length: "64", Comment: "序列号", DefaultVal: "''"},
		},
		Columns: []ColumnSummary{
			{Name: "gateway_id", Type: "INT", PK: true},
			{Name: "gateway_sn", Type: "VARCHAR(64)"},
		},
	}

	assert.Empty(t, ValidateTable(table))
}

func TestValidateTableUnknownSummaryColumn(t *testing.T) {
	table := &TableDefinition{
		Name:    "alarm_rules",
		Comment: "告警规则",
		Fields: []*FieldDefinition{
			{Name: "id", Type: "INT", PrimaryKey: true, AutoIncrement: true, Comment: "主键"},
		},
		Columns: []ColumnSummary{
			{Name: "id", Type: "INT", PK: true},
			{Name: "rule_nmae", Type: "VARCHAR(64)"},
		},
	}

	issues := ValidateTable(table)
	issue := findKind(t, issues, KindUnknownSummaryColumn)
	assert.Equal(t, SeverityError, issue.Severity)
	assert.Equal(t, "alarm_rules", issue.Table)
	assert.Equal(t, "rule_nmae", issue.Field)
	assert.Contains(t, issue.Message, "does not exist in fields")
}

func TestValidateTablePrimaryKeyMismatchBothDirections(t *testing.T) {
	table := &TableDefinition{
		Name:    "ml_models",
		Comment: "模型登记",
		Fields: []*FieldDefinition{
			{Name: "model_id", Type: "INT", PrimaryKey: true, AutoIncrement: true, Comment: "主键"},
			{Name: "model_name", Type: "VARCHAR", Length: "128", Comment: "名称", DefaultVal: "''"},
		},
		Columns: []ColumnSummary{
			{Name: "model_id", Type: "INT"},
			{Name: "model_name", Type: "VARCHAR(128)", PK: true},
		},
	}

	issues := ValidateTable(table).Filter(SeverityError)
	require.Len(t, issues, 2)
	assert.Equal(t, KindPrimaryKeyMismatch, issues[0].Kind)
	assert.Equal(t, "model_id", issues[0].Field)
	assert.Contains(t, issues[0].Message, "does not mark it pk")
	assert.Equal(t, KindPrimaryKeyMismatch, issues[1].Kind)
	assert.Equal(t, "model_name", issues[1].Field)
	assert.Contains(t, issues[1].Message, "not a primary key")
}

func TestValidateTableMultipleAutoIncrement(t *testing.T) {
	table := &TableDefinition{
		Name:    "data_clean_logs",
		Comment: "清洗日志",
		Fields: []*FieldDefinition{
			{Name: "id", Type: "INT", PrimaryKey: true, AutoIncrement: true, Comment: "主键"},
			{Name: "seq_no", Type: "BIGINT", AutoIncrement: true, Comment: "序号"},
		},
	}

	issue := findKind(t, ValidateTable(table), KindMultipleAutoIncrement)
	assert.Equal(t, SeverityError, issue.Severity)
	assert.Equal(t, "seq_no", issue.Field)
	assert.Contains(t, issue.Message, `"id" is already auto-incrementing`)
}

func TestValidateTableDuplicateField(t *testing.T) {
	table := &TableDefinition{
		Name:    "data_slices",
		Comment: "数据切片",
		Fields: []*FieldDefinition{
			{Name: "id", Type: "INT", PrimaryKey: true, AutoIncrement: true, Comment: "主键"},
			{Name: "slice_key", Type: "VARCHAR", Length: "64", Comment: "键", DefaultVal: "''"},
			{Name: "slice_key", Type: "VARCHAR", Length: "64", Comment: "键", DefaultVal: "''"},
		},
	}

	issue := findKind(t, ValidateTable(table), KindDuplicateField)
	assert.Equal(t, SeverityError, issue.Severity)
	assert.Contains(t, issue.Message, `"slice_key" declared more than once`)
}

func TestValidateTableInvalidFkRef(t *testing.T) {
	table := &TableDefinition{
		Name:    "sensor_mp_mapping",
		Comment: "测点映射",
		Fields: []*FieldDefinition{
			{Name: "sensor_id", Type: "INT", Comment: "传感器", DefaultVal: "0"},
		},
		Columns: []ColumnSummary{
			{Name: "sensor_id", Type: "INT", FK: true},
		},
	}

	issue := findKind(t, ValidateTable(table), KindInvalidReference)
	assert.Equal(t, SeverityError, issue.Severity)
	assert.Equal(t, "sensor_id", issue.Field)
}

func TestValidateTableAdvisories(t *testing.T) {
	table := &TableDefinition{
		Name: "model_versions",
		Fields: []*FieldDefinition{
			{Name: "version_id", Type: "INT", PrimaryKey: true, Unique: true, AutoIncrement: true, Comment: "主键"},
			{Name: "artifact_path", Type: "VARCHAR", Length: "255"},
			{Name: "released_at", Type: "TIMESTAMP", Nullable: true, Comment: "发布时间"},
		},
		Columns: []ColumnSummary{
			{Name: "version_id", Type: "INT", PK: true},
			{Name: "artifact_path", Type: "TEXT"},
		},
	}

	issues := ValidateTable(table)
	assert.Empty(t, issues.Filter(SeverityError))

	advisories := issues.Filter(SeverityAdvisory)
	got := kinds(advisories)
	assert.Contains(t, got, KindUniquePrimaryKey)
	assert.Contains(t, got, KindRequiredWithoutDefault)
	assert.Contains(t, got, KindMissingComment)
	assert.Contains(t, got, KindSummaryTypeDrift)
	assert.Contains(t, got, KindSummaryOmitsField)

	drift := findKind(t, advisories, KindSummaryTypeDrift)
	assert.Contains(t, drift.Message, `"TEXT"`)
	assert.Contains(t, drift.Message, `"VARCHAR(255)"`)

	omitted := findKind(t, advisories, KindSummaryOmitsField)
	assert.Equal(t, "released_at", omitted.Field)
}

func TestValidateTableEmptySummaryIsNotFlagged(t *testing.T) {
	table := &TableDefinition{
		Name:    "alarm_events",
		Comment: "告警事件",
		Fields: []*FieldDefinition{
			{Name: "id", Type: "BIGINT", PrimaryKey: true, AutoIncrement: true, Comment: "主键"},
			{Name: "rule_id", Type: "INT", Comment: "规则", DefaultVal: "0"},
		},
	}

	issues := ValidateTable(table)
	assert.NotContains(t, kinds(issues), KindSummaryOmitsField)
}

func TestIssuesFilterAndCount(t *testing.T) {
	issues := Issues{
		{Severity: SeverityFatal, Kind: KindDuplicateTable},
		{Severity: SeverityError, Kind: KindPrimaryKeyMismatch},
		{Severity: SeverityError, Kind: KindUnknownSummaryColumn},
		{Severity: SeverityAdvisory, Kind: KindMissingComment},
	}

	assert.Len(t, issues.Filter(SeverityError), 2)
	assert.Equal(t, 1, issues.Count(SeverityFatal))
	assert.Equal(t, 1, issues.Count(SeverityAdvisory))
	assert.True(t, issues.HasErrors())
	assert.False(t, Issues{{Severity: SeverityAdvisory}}.HasErrors())
}

func TestIssueStringFormats(t *testing.T) {
	withField := Issue{Severity: SeverityError, Table: "asset_nodes", Field: "node_id", Message: "pk mismatch"}
	assert.Equal(t, `error: table "asset_nodes" field "node_id": pk mismatch`, withField.String())

	tableOnly := Issue{Severity: SeverityAdvisory, Table: "asset_nodes", Message: "table has no comment"}
	assert.Equal(t, `advisory: table "asset_nodes": table has no comment`, tableOnly.String())
}
