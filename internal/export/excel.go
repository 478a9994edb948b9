package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"glucolens/internal/analyze"
	"glucolens/internal/errors"
)

// Sheet names in the exported workbook.
const (
	sheetSummary     = "Summary"
	sheetIndicators  = "Indicators"
	sheetWindows     = "Windows"
	sheetSegments    = "Segments"
	sheetComparisons = "Comparisons"
)

// WriteWorkbook writes the report as an Excel workbook at path.
func WriteWorkbook(path string, report *analyze.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetSummary)
	if err := writeSummary(f, report); err != nil {
		return err
	}
	if err := writeIndicators(f, report); err != nil {
		return err
	}
	if err := writeWindows(f, report); err != nil {
		return err
	}
	if err := writeSegments(f, report); err != nil {
		return err
	}
	if err := writeComparisons(f, report); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return errors.ExportError(fmt.Sprintf("failed to save workbook %s", path), err)
	}
	return nil
}

func writeSummary(f *excelize.File, report *analyze.Report) error {
	rows := [][]interface{}{
		{"Report ID", report.ID.String()},
		{"Generated At", report.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
		{"Samples", report.Samples},
		{"Duration (hours)", report.DurationHours},
		{"Total Days", report.TotalDays},
		{"Mean (mmol/L)", report.Metrics.Mean},
		{"Std Dev", report.Metrics.StdDev},
		{"CV (%)", report.Metrics.CV},
		{"Time In Range", report.Metrics.TimeInRange},
		{"GMI (%)", report.Metrics.GMI},
		{"Brittleness Type", string(report.Brittleness.Type)},
		{"Severity", report.Brittleness.Severity},
		{"Severity Label", report.Brittleness.SeverityLabel},
		{"Segments", len(report.Segmentation.Segments)},
		{"Segmentation Grade", report.Segmentation.Quality.Grade},
	}
	return writeRows(f, sheetSummary, nil, rows)
}

func writeIndicators(f *excelize.File, report *analyze.Report) error {
	if _, err := f.NewSheet(sheetIndicators); err != nil {
		return errors.ExportError("failed to create indicators sheet", err)
	}
	v := report.Brittleness.Indicators
	rows := [][]interface{}{
		{"Lyapunov Exponent", v.Lyapunov, degradedMark(v.IsDegraded("lyapunov"))},
		{"Approximate Entropy", v.ApEn, degradedMark(v.IsDegraded("apen"))},
		{"Shannon Entropy", v.ShannonEntropy, degradedMark(v.IsDegraded("shannon"))},
		{"Hurst Exponent", v.Hurst, degradedMark(v.IsDegraded("hurst"))},
		{"Fractal Dimension", v.FractalDim, degradedMark(v.IsDegraded("fractal"))},
		{"Correlation Dimension", v.CorrDim, degradedMark(v.IsDegraded("corrdim"))},
		{"Autocorr First Zero", v.Autocorr.FirstZeroCrossing, degradedMark(v.IsDegraded("autocorr"))},
		{"Autocorr Decay Rate", v.Autocorr.DecayRate, ""},
		{"Autocorr Periodicity", v.Autocorr.Periodicity, ""},
	}
	return writeRows(f, sheetIndicators, []interface{}{"Indicator", "Value", "Degraded"}, rows)
}

func writeWindows(f *excelize.File, report *analyze.Report) error {
	if _, err := f.NewSheet(sheetWindows); err != nil {
		return errors.ExportError("failed to create windows sheet", err)
	}
	rows := make([][]interface{}, 0, len(report.Segmentation.Windows))
	for _, w := range report.Segmentation.Windows {
		rows = append(rows, []interface{}{
			w.CenterHour, w.Mean, w.CV, w.TimeInRange, w.GMI, w.Min, w.Max,
			w.Brittleness, w.VariabilityIndex, w.Stability, w.Trend, w.Chaos,
		})
	}
	header := []interface{}{
		"Center Hour", "Mean", "CV", "TIR", "GMI", "Min", "Max",
		"Brittleness", "Variability Index", "Stability", "Trend", "Chaos",
	}
	return writeRows(f, sheetWindows, header, rows)
}

func writeSegments(f *excelize.File, report *analyze.Report) error {
	if _, err := f.NewSheet(sheetSegments); err != nil {
		return errors.ExportError("failed to create segments sheet", err)
	}
	rows := make([][]interface{}, 0, len(report.Segmentation.Segments))
	for _, s := range report.Segmentation.Segments {
		row := []interface{}{s.Index, s.StartHour, s.EndHour, s.DurationHours()}
		if s.Stats != nil {
			row = append(row,
				s.Stats.Mean, s.Stats.CV, s.Stats.TimeInRange,
				s.Stats.TimeAboveRange, s.Stats.TimeBelowRange,
				s.Stats.GMI, s.Stats.Brittleness, s.Stats.Samples)
		}
		rows = append(rows, row)
	}
	header := []interface{}{
		"Segment", "Start Hour", "End Hour", "Duration (h)",
		"Mean", "CV", "TIR", "TAR", "TBR", "GMI", "Brittleness", "Samples",
	}
	return writeRows(f, sheetSegments, header, rows)
}

func writeComparisons(f *excelize.File, report *analyze.Report) error {
	if _, err := f.NewSheet(sheetComparisons); err != nil {
		return errors.ExportError("failed to create comparisons sheet", err)
	}
	rows := make([][]interface{}, 0, len(report.Segmentation.Comparisons))
	for _, c := range report.Segmentation.Comparisons {
		rows = append(rows, []interface{}{
			c.From, c.To, c.DeltaTIR, c.DeltaCV, c.DeltaMean, c.Significant,
		})
	}
	header := []interface{}{"From", "To", "Delta TIR (pp)", "Delta CV", "Delta Mean", "Significant"}
	return writeRows(f, sheetComparisons, header, rows)
}

func writeRows(f *excelize.File, sheet string, header []interface{}, rows [][]interface{}) error {
	rowIdx := 1
	if header != nil {
		cell, _ := excelize.CoordinatesToCellName(1, rowIdx)
		if err := f.SetSheetRow(sheet, cell, &header); err != nil {
			return errors.ExportError(fmt.Sprintf("failed to write %s header", sheet), err)
		}
		rowIdx++
	}
	for _, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, rowIdx)
		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return errors.ExportError(fmt.Sprintf("failed to write %s row %d", sheet, rowIdx), err)
		}
		rowIdx++
	}
	return nil
}

func degradedMark(degraded bool) string {
	if degraded {
		return "yes"
	}
	return ""
}
