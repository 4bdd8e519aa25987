package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const assetJSON = `{
  "domain": "asset-management",
  "label": "资产管理",
  "tables": [
    {
      "tableName": "asset_nodes",
      "tableComment": "资产树节点",
      "fields": [
        {"name": "node_id", "type": "INT", "primaryKey": true, "autoIncrement": true, "comment": "节点ID"},
        {"name": "parent_node_id", "type": "INT", "nullable": true, "comment": "父节点ID"}
      ],
      "columns": [
        {"name": "node_id", "type": "INT", "pk": true},
        {"name": "parent_node_id", "type": "INT", "fk": true, "fkRef": "asset_nodes.node_id"}
      ]
    },
    {
      "tableName": "asset_sensors",
      "tableComment": "资产传感器",
      "fields": [
        {"name": "id", "type": "INT", "primaryKey": true, "autoIncrement": true, "comment": "传感器ID"}
      ]
    }
  ]
}`

const deviceJSON = `{
  "domain": "device-ops",
  "label": "设备运维",
  "tables": [
    {
      "tableName": "sensor_mp_mapping",
      "tableComment": "传感器测点映射",
      "fields": [
        {"name": "id", "type": "INT", "primaryKey": true, "autoIncrement": true, "comment": "主键"},
        {"name": "sensor_id", "type": "INT", "defaultVal": "0", "comment": "传感器ID"}
      ],
      "columns": [
        {"name": "id", "type": "INT", "pk": true},
        {"name": "sensor_id", "type": "INT", "fk": true, "fkRef": "asset_sensors.id"}
      ]
    }
  ]
}`

func newTestServer(t *testing.T) (http.Handler, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "10-asset.json"), []byte(assetJSON), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20-device.json"), []byte(deviceJSON), 0o644))

	srv, err := NewServer(dir, zap.NewNop())
	require.NoError(t, err)
	return srv.Handler, dir
}

func doRequest(t *testing.T, h http.Handler, method, path string) (*httptest.ResponseRecorder, APIResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestStatsEndpoint(t *testing.T) {
	h, _ := newTestServer(t)

	w, resp := doRequest(t, h, http.MethodGet, "/api/stats")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", resp.Status)

	data := resp.Data.(map[string]any)
	assert.EqualValues(t, 3, data["tables"])
	assert.EqualValues(t, 5, data["fields"])
	assert.EqualValues(t, 2, data["domains"])
	assert.EqualValues(t, 2, data["relations"])
}

func TestDomainEndpoints(t *testing.T) {
	h, _ := newTestServer(t)

	w, resp := doRequest(t, h, http.MethodGet, "/api/domains")
	assert.Equal(t, http.StatusOK, w.Code)
	domains := resp.Data.([]any)
	require.Len(t, domains, 2)

	w, _ = doRequest(t, h, http.MethodGet, "/api/domains/asset-management/tables")
	assert.Equal(t, http.StatusOK, w.Code)

	w, resp = doRequest(t, h, http.MethodGet, "/api/domains/no-such-domain/tables")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "error", resp.Status)
	assert.Contains(t, resp.Error, "no-such-domain")
}

func TestTableEndpoints(t *testing.T) {
	h, _ := newTestServer(t)

	w, resp := doRequest(t, h, http.MethodGet, "/api/tables/asset_nodes")
	assert.Equal(t, http.StatusOK, w.Code)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "asset-management", data["domain"])

	w, _ = doRequest(t, h, http.MethodGet, "/api/tables/ASSET_NODES")
	assert.Equal(t, http.StatusNotFound, w.Code, "lookups are case-sensitive")

	w, resp = doRequest(t, h, http.MethodGet, "/api/tables/asset_nodes/relations")
	assert.Equal(t, http.StatusOK, w.Code)
	rels := resp.Data.(map[string]any)
	assert.Len(t, rels["outgoing"].([]any), 1)
	assert.Len(t, rels["incoming"].([]any), 1)
}

func TestGraphEndpointRendersMermaid(t *testing.T) {
	h, _ := newTestServer(t)

	w, resp := doRequest(t, h, http.MethodGet, "/api/graph")
	assert.Equal(t, http.StatusOK, w.Code)
	diagram := resp.Data.(map[string]any)["mermaid"].(string)
	assert.Contains(t, diagram, "erDiagram")
	assert.Contains(t, diagram, "sensor_mp_mapping")
}

func TestOrderEndpointReportsCycle(t *testing.T) {
	h, _ := newTestServer(t)

	// asset_nodes references itself, so no topological order exists.
	w, resp := doRequest(t, h, http.MethodGet, "/api/order")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, resp.Error, "cycle")
}

func TestReloadSwapsAndFailsClosed(t *testing.T) {
	h, dir := newTestServer(t)

	// Break the source: device-ops redeclares asset_nodes.
	dup := `{"domain": "device-ops", "tables": [{"tableName": "asset_nodes", "fields": [{"name": "id", "type": "INT"}]}]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20-device.json"), []byte(dup), 0o644))

	w, resp := doRequest(t, h, http.MethodPost, "/api/reload")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, resp.Error, "duplicate table")

	// The previous catalog is still published.
	_, stats := doRequest(t, h, http.MethodGet, "/api/stats")
	assert.EqualValues(t, 3, stats.Data.(map[string]any)["tables"])

	// Fix the source and reload again.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20-device.json"), []byte(deviceJSON), 0o644))
	w, _ = doRequest(t, h, http.MethodPost, "/api/reload")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestServerRefusesFatalInitialBuild(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	dup := `{"domain": "a", "tables": [{"tableName": "t", "fields": [{"name": "id", "type": "INT"}]}]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "1.json"), []byte(dup), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2.json"), []byte(dup), 0o644))

	_, err := NewServer(dir, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "initial catalog build")
}
