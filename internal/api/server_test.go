package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glucolens/internal/analyze"
	"glucolens/internal/config"
	"glucolens/internal/logging"
	"glucolens/internal/testkit"
)

func newTestServer() *Server {
	log := logging.NewLogger(logging.LogLevelError)
	analyzer := analyze.New(config.Default(), log)
	return NewServer(analyzer, config.ServerConfig{Port: "0"}, log)
}

func TestHealthz(t *testing.T) {
	router := newTestServer().Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAnalyzeEndpoint(t *testing.T) {
	router := newTestServer().Router()

	series := testkit.SeriesAt5Min(testkit.RapidSwings(300, 7))
	body, err := json.Marshal(map[string]interface{}{"samples": series.Samples()})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/analyze", bytes.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var report analyze.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 300, report.Samples)
	assert.Equal(t, "I", string(report.Brittleness.Type))
	assert.Equal(t, 100.0, report.Brittleness.Severity)
	assert.NotEmpty(t, report.Segmentation.Segments)
}

func TestAnalyzeEndpoint_BadJSON(t *testing.T) {
	router := newTestServer().Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader("{not json")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_INPUT", resp["code"])
}

func TestAnalyzeEndpoint_InvalidSeries(t *testing.T) {
	router := newTestServer().Router()

	// second sample precedes the first
	body := `{"samples":[
		{"at":"2024-03-01T00:05:00Z","value":5.5},
		{"at":"2024-03-01T00:00:00Z","value":6.0}
	]}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "VALIDATION_ERROR", resp["code"])
}

func TestAnalyzeEndpoint_EmptySeries(t *testing.T) {
	router := newTestServer().Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(`{"samples":[]}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
