package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fraud-tools/scam-report-builder/pkg/models/api"
	"github.com/fraud-tools/scam-report-builder/pkg/services/odt"
	"github.com/fraud-tools/scam-report-builder/pkg/services/report"
	"github.com/fraud-tools/scam-report-builder/pkg/services/template"
	"github.com/fraud-tools/scam-report-builder/pkg/store/config"
	"github.com/fraud-tools/scam-report-builder/pkg/store/snapshot"
	"github.com/fraud-tools/scam-report-builder/pkg/store/templates"
)

func setupServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	logger := zerolog.New(zerolog.NewTestWriter(t))
	base := t.TempDir()

	cfg := config.NewStore(filepath.Join(base, "scam_report_config.json"), logger)
	templateStore, err := templates.NewStore(filepath.Join(base, "custom_templates"))
	require.NoError(t, err)
	registry := template.NewRegistry(templateStore, logger)
	snapshots, err := snapshot.NewStore(filepath.Join(base, ".report_data"), logger)
	require.NoError(t, err)
	reports := report.NewService(cfg, registry, odt.NewAssembler(logger), snapshots, logger)

	webAPI := NewWebAPI(logger, Config{
		Addr: ":0",
		Dependencies: Dependencies{
			Reports:   reports,
			Templates: registry,
		},
	})

	srv := httptest.NewServer(webAPI.Router())
	t.Cleanup(srv.Close)
	return srv, base
}

func TestWebAPI_ListTemplates(t *testing.T) {
	srv, _ := setupServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/templates")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []api.Template
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.NotEmpty(t, list)
	assert.Equal(t, "advance-fee", list[0].Key)
	assert.True(t, list[0].Builtin)
}

func TestWebAPI_GetTemplate(t *testing.T) {
	srv, _ := setupServer(t)

	t.Run("builtin found", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/v1/templates/advance-fee")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var detail map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&detail))
		assert.Equal(t, "Advance-Fee Scam", detail["name"])
		assert.NotEmpty(t, detail["sections"])
	})

	t.Run("unknown key", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/v1/templates/no-such")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestWebAPI_ExportReport(t *testing.T) {
	srv, base := setupServer(t)

	t.Run("success with explicit output path", func(t *testing.T) {
		outputPath := filepath.Join(base, "report.odt")
		body, err := json.Marshal(map[string]any{
			"report_data": map[string]any{
				"type":  "Advance-Fee Scam",
				"alias": []string{"John Okafor"},
			},
			"template_key": "advance-fee",
			"output_path":  outputPath,
		})
		require.NoError(t, err)

		resp, err := http.Post(srv.URL+"/api/v1/reports", "application/json", bytes.NewReader(body))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result api.ExportResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.Equal(t, outputPath, result.DocumentPath)
		assert.Equal(t, 1, result.ReportNumber)
		assert.FileExists(t, outputPath)
		assert.FileExists(t, result.SnapshotPath)
	})

	t.Run("missing report data", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/api/v1/reports", "application/json",
			bytes.NewReader([]byte(`{"template_key": "advance-fee"}`)))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("malformed body", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/api/v1/reports", "application/json",
			bytes.NewReader([]byte(`{broken`)))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown template", func(t *testing.T) {
		body := []byte(`{"report_data": {"type": "X"}, "template_key": "no-such", "output_path": "ignored.odt"}`)
		resp, err := http.Post(srv.URL+"/api/v1/reports", "application/json", bytes.NewReader(body))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

}

func TestWebAPI_ExportReport_NoReportsFolder(t *testing.T) {
	srv, _ := setupServer(t)

	body := []byte(`{"report_data": {"type": "X", "alias": ["A"]}}`)
	resp, err := http.Post(srv.URL+"/api/v1/reports", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
