package ingest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"glucolens/internal/errors"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trace.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeTempCSV(t, `timestamp,glucose_mmol
2024-03-01T00:00:00Z,5.5
2024-03-01T00:05:00Z,6.1
2024-03-01T00:10:00Z,5.9
`)

	series, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, 3, series.Len())
	assert.Equal(t, []float64{5.5, 6.1, 5.9}, series.Values())
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), series.Start())
}

func TestLoadCSV_NoHeader(t *testing.T) {
	path := writeTempCSV(t, `2024-03-01T00:00:00Z,5.5
2024-03-01T00:05:00Z,6.1
`)

	series, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, 2, series.Len())
}

func TestLoadCSV_BadRow(t *testing.T) {
	path := writeTempCSV(t, `2024-03-01T00:00:00Z,5.5
not-a-timestamp,6.1
`)

	_, err := LoadCSV(path)
	require.Error(t, err)
}

func TestLoadCSV_UnsortedRowsRejected(t *testing.T) {
	path := writeTempCSV(t, `2024-03-01T00:05:00Z,5.5
2024-03-01T00:00:00Z,6.1
`)

	_, err := LoadCSV(path)
	require.Error(t, err)
	assert.Equal(t, errors.CodeValidationError, errors.GetCode(err))
}

func TestLoadExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"timestamp", "glucose"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"2024-03-01T00:00:00Z", 5.5}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"2024-03-01T00:05:00Z", 6.1}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	series, err := LoadExcel(path)
	require.NoError(t, err)
	assert.Equal(t, 2, series.Len())
	assert.Equal(t, []float64{5.5, 6.1}, series.Values())
}

func TestLoad_DispatchesOnExtension(t *testing.T) {
	csvPath := writeTempCSV(t, "2024-03-01T00:00:00Z,5.5\n2024-03-01T00:05:00Z,6.1\n")
	series, err := Load(csvPath)
	require.NoError(t, err)
	assert.Equal(t, 2, series.Len())

	_, err = Load("trace.txt")
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
