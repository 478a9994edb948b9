package ingest

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"glucolens/domain/glucose"
	"glucolens/internal/errors"
)

// Load reads a CGM trace from path, dispatching on the file extension.
// CSV and Excel workbooks are supported; both expect a timestamp column
// followed by a glucose value column in mmol/L.
func Load(path string) (glucose.Series, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path)
	case ".xlsx":
		return LoadExcel(path)
	default:
		return glucose.Series{}, errors.InvalidInput("unsupported input format, expected .csv or .xlsx")
	}
}

// LoadCSV reads a two-column CSV of RFC3339 timestamps and glucose values.
// A header row is detected and skipped.
func LoadCSV(path string) (glucose.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return glucose.Series{}, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var samples []glucose.Sample
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return glucose.Series{}, errors.Wrapf(err, "failed to read %s", path)
		}
		line++
		if len(record) < 2 {
			return glucose.Series{}, errors.Wrapf(
				errors.InvalidInput("row needs timestamp and value columns"), "%s line %d", path, line)
		}
		sample, ok, err := parseRow(record[0], record[1], line == 1)
		if err != nil {
			return glucose.Series{}, errors.Wrapf(err, "%s line %d", path, line)
		}
		if ok {
			samples = append(samples, sample)
		}
	}
	return glucose.NewSeries(samples)
}

// LoadExcel reads the first sheet of a workbook with the same two-column
// layout as LoadCSV.
func LoadExcel(path string) (glucose.Series, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return glucose.Series{}, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return glucose.Series{}, errors.Wrapf(err, "failed to read sheet %s", sheet)
	}

	var samples []glucose.Sample
	for i, row := range rows {
		if len(row) < 2 {
			continue
		}
		sample, ok, err := parseRow(row[0], row[1], i == 0)
		if err != nil {
			return glucose.Series{}, errors.Wrapf(err, "%s row %d", path, i+1)
		}
		if ok {
			samples = append(samples, sample)
		}
	}
	return glucose.NewSeries(samples)
}

// parseRow parses one timestamp/value pair. A first row that does not
// parse is treated as a header and skipped.
func parseRow(tsField, valField string, maybeHeader bool) (glucose.Sample, bool, error) {
	ts, tsErr := time.Parse(time.RFC3339, strings.TrimSpace(tsField))
	val, valErr := strconv.ParseFloat(strings.TrimSpace(valField), 64)
	if tsErr != nil || valErr != nil {
		if maybeHeader {
			return glucose.Sample{}, false, nil
		}
		if tsErr != nil {
			return glucose.Sample{}, false, errors.Wrap(tsErr, "invalid timestamp, expected RFC3339")
		}
		return glucose.Sample{}, false, errors.Wrap(valErr, "invalid glucose value")
	}
	return glucose.Sample{At: ts, Value: val}, true, nil
}
