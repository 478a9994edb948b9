package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"glucolens/internal/analyze"
	"glucolens/internal/api"
	"glucolens/internal/config"
	"glucolens/internal/export"
	"glucolens/internal/ingest"
	"glucolens/internal/logging"
)

func main() {
	// .env is optional; environment variables win either way
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "glucolens",
		Short: "Glucose brittleness analysis and intelligent segmentation",
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newAnalyzeCmd() *cobra.Command {
	var excelOut string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "analyze [input-file]",
		Short: "Analyze a CGM trace from a CSV or Excel file",
		Long: `Analyze a CGM trace and print a summary of the brittleness
classification and segmentation.

The input file needs two columns: an RFC3339 timestamp and a glucose value
in mmol/L. A header row is skipped automatically.

Example: glucolens analyze trace.csv --excel report.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logging.NewDefaultLogger()

			series, err := ingest.Load(args[0])
			if err != nil {
				return err
			}

			report, err := analyze.New(cfg.Analysis, log).Run(cmd.Context(), series)
			if err != nil {
				return err
			}

			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else {
				printSummary(cmd, report)
			}

			if excelOut != "" {
				if err := export.WriteWorkbook(excelOut, report); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "workbook written to %s\n", excelOut)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&excelOut, "excel", "", "Write the full report as an Excel workbook")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the full report as JSON instead of a summary")

	return cmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis pipeline over HTTP",
		Long: `Start an HTTP server exposing POST /analyze and GET /healthz.

Example: glucolens serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logging.NewDefaultLogger()
			analyzer := analyze.New(cfg.Analysis, log)
			return api.NewServer(analyzer, cfg.Server, log).ListenAndServe()
		},
	}
}

func printSummary(cmd *cobra.Command, report *analyze.Report) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Report %s\n", report.ID)
	fmt.Fprintf(out, "  samples: %d over %.1f hours\n", report.Samples, report.DurationHours)
	fmt.Fprintf(out, "  mean %.2f mmol/L, CV %.1f%%, TIR %.0f%%, GMI %.1f%%\n",
		report.Metrics.Mean, report.Metrics.CV, report.Metrics.TimeInRange*100, report.Metrics.GMI)
	fmt.Fprintf(out, "  brittleness: Type %s, severity %.1f (%s)\n",
		report.Brittleness.Type, report.Brittleness.Severity, report.Brittleness.SeverityLabel)
	if len(report.Brittleness.Indicators.Degraded) > 0 {
		fmt.Fprintf(out, "  degraded indicators: %v\n", report.Brittleness.Indicators.Degraded)
	}
	fmt.Fprintf(out, "  segments: %d (%s, quality %.1f)\n",
		len(report.Segmentation.Segments), report.Segmentation.Quality.Grade, report.Segmentation.Quality.Overall)
	for _, s := range report.Segmentation.Segments {
		if s.Stats == nil {
			fmt.Fprintf(out, "    [%d] %.1fh - %.1fh (no samples)\n", s.Index, s.StartHour, s.EndHour)
			continue
		}
		fmt.Fprintf(out, "    [%d] %.1fh - %.1fh: mean %.2f, CV %.1f%%, TIR %.0f%%\n",
			s.Index, s.StartHour, s.EndHour, s.Stats.Mean, s.Stats.CV, s.Stats.TimeInRange*100)
	}
	for _, c := range report.Segmentation.Comparisons {
		marker := ""
		if c.Significant {
			marker = " *"
		}
		fmt.Fprintf(out, "  segment %d vs %d: TIR %+.1fpp, CV %+.1f%s\n",
			c.From, c.To, c.DeltaTIR, c.DeltaCV, marker)
	}
}
