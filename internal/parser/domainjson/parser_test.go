package domainjson

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schemadesk/internal/catalog"
)

const deviceOpsJSON = `{
  "domain": "device-ops",
  "label": "设备运维",
  "tables": [
    {
      "tableName": "edge_gateways",
      "tableComment": "边缘网关",
      "displayName": "边缘网关",
      "icon": "router",
      "engine": "InnoDB",
      "charset": "utf8mb4",
      "collation": "utf8mb4_unicode_ci",
      "fields": [
        {"name": "gateway_id", "type": "INT", "primaryKey": true, "autoIncrement": true, "comment": "网关ID"},
        {"name": "gateway_sn", "type": "VARCHAR", "length": "64", "unique": true, "defaultVal": "''", "comment": "网关序列号"},
        {"name": "status", "type": "VARCHAR", "length": "16", "defaultVal": "'offline'", "comment": "在线状态"}
      ],
      "columns": [
        {"name": "gateway_id", "type": "INT", "pk": true},
        {"name": "gateway_sn", "type": "VARCHAR(64)"},
        {"name": "status", "type": "VARCHAR(16)"}
      ]
    }
  ],
  "relations": [
    {"fromTable": "edge_gateways", "fromColumn": "gateway_sn", "toTable": "edge_gateways", "toColumn": "gateway_sn", "kind": "logical-reference"}
  ]
}`

func TestParseDeviceOpsDomain(t *testing.T) {
	d, err := NewParser().Parse(strings.NewReader(deviceOpsJSON))
	require.NoError(t, err)

	assert.Equal(t, "device-ops", d.Name)
	assert.Equal(t, "设备运维", d.Label)
	require.Len(t, d.Tables, 1)

	tbl := d.Tables[0]
	assert.Equal(t, "edge_gateways", tbl.Name)
	assert.Equal(t, "边缘网关", tbl.Comment)
	assert.Equal(t, "InnoDB", tbl.Engine)
	assert.Equal(t, "utf8mb4_unicode_ci", tbl.Collation)

	require.Len(t, tbl.Fields, 3)
	assert.True(t, tbl.Fields[0].PrimaryKey)
	assert.True(t, tbl.Fields[0].AutoIncrement)
	assert.False(t, tbl.Fields[0].Nullable)
	assert.Equal(t, "VARCHAR(64)", tbl.Fields[1].RenderedType())
	assert.True(t, tbl.Fields[1].Unique)
	assert.Equal(t, "'offline'", tbl.Fields[2].DefaultVal)

	require.Len(t, tbl.Columns, 3)
	assert.True(t, tbl.Columns[0].PK)

	require.Len(t, d.Relations, 1)
	assert.Equal(t, catalog.RelationLogicalReference, d.Relations[0].Kind)
}

func TestParseRejectsMalformedDomains(t *testing.T) {
	cases := []struct {
		name    string
		json    string
		wantErr string
	}{
		{"invalid json", `{"domain": `, "decode error"},
		{"missing domain name", `{"tables": []}`, "missing domain name"},
		{"table without name", `{"domain": "x", "tables": [{"fields": []}]}`, "no tableName"},
		{"null table", `{"domain": "x", "tables": [null]}`, "is null"},
		{"field without name", `{"domain": "x", "tables": [{"tableName": "t", "fields": [{"type": "INT"}]}]}`, "no name"},
		{"field without type", `{"domain": "x", "tables": [{"tableName": "t", "fields": [{"name": "id"}]}]}`, "no type"},
		{"incomplete relation", `{"domain": "x", "relations": [{"fromTable": "a"}]}`, "needs fromTable"},
		{"unknown relation kind", `{"domain": "x", "tables": [{"tableName": "a", "fields": [{"name": "id", "type": "INT"}]}], "relations": [{"fromTable": "a", "fromColumn": "id", "toTable": "a", "kind": "banana"}]}`, "unknown kind"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewParser().Parse(strings.NewReader(tc.json))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestParseFileMissing(t *testing.T) {
	_, err := NewParser().ParseFile("/nonexistent/dir/domain.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open file")
}
