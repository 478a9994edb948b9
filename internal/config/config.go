package config

import (
	"os"
	"strconv"

	"glucolens/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Analysis AnalysisConfig
	Server   ServerConfig
	Export   ExportConfig
}

// AnalysisConfig holds the tunable parameters of the analysis pipeline.
// Every estimator and detector reads its knobs from here so that a single
// config value change propagates through the whole pipeline.
type AnalysisConfig struct {
	// Minimum number of samples before indicator estimation is attempted.
	MinSamples int

	// Phase-space embedding parameters shared by the Lyapunov and
	// correlation dimension estimators.
	EmbedDim       int
	EmbedLag       int
	MaxEmbedPoints int

	// Approximate entropy parameters.
	MaxApEnPoints int
	ApEnM         int
	ApEnRFactor   float64

	ShannonBins   int
	HurstScales   int
	FractalScales int
	CorrRadii     int

	// Glycemic target range in mmol/L.
	TargetLow  float64
	TargetHigh float64

	// Change points closer together than this collapse into one.
	MergeToleranceHours float64
	// Segments shorter than this are absorbed into a neighbor.
	MinSegmentHours float64
	// Minimum standardized feature-space jump for a cluster label change
	// to count as a change point candidate.
	MinClusterJump float64

	// Deltas between compared segments beyond which the comparison is
	// marked significant. TIR in percentage points, CV in CV points.
	// Empirically chosen; no derivation exists, so they stay tunable.
	SignificantTIRDelta float64
	SignificantCVDelta  float64
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// ExportConfig holds report export settings
type ExportConfig struct {
	ExcelFile string
}

// Default returns the analysis configuration used when no overrides are set.
func Default() AnalysisConfig {
	return AnalysisConfig{
		MinSamples:          20,
		EmbedDim:            3,
		EmbedLag:            1,
		MaxEmbedPoints:      250,
		MaxApEnPoints:       1000,
		ApEnM:               2,
		ApEnRFactor:         0.2,
		ShannonBins:         50,
		HurstScales:         10,
		FractalScales:       10,
		CorrRadii:           10,
		TargetLow:           3.9,
		TargetHigh:          10.0,
		MergeToleranceHours: 24.0,
		MinSegmentHours:     36.0,
		MinClusterJump:      0.5,
		SignificantTIRDelta: 15.0,
		SignificantCVDelta:  10.0,
	}
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Analysis: loadAnalysisConfig(),
		Server:   loadServerConfig(),
		Export:   loadExportConfig(),
	}

	if err := config.Analysis.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadAnalysisConfig() AnalysisConfig {
	cfg := Default()

	cfg.MinSamples = getEnvInt("GLUCOLENS_MIN_SAMPLES", cfg.MinSamples)
	cfg.MaxEmbedPoints = getEnvInt("GLUCOLENS_MAX_EMBED_POINTS", cfg.MaxEmbedPoints)
	cfg.MaxApEnPoints = getEnvInt("GLUCOLENS_MAX_APEN_POINTS", cfg.MaxApEnPoints)
	cfg.TargetLow = getEnvFloat("GLUCOLENS_TARGET_LOW", cfg.TargetLow)
	cfg.TargetHigh = getEnvFloat("GLUCOLENS_TARGET_HIGH", cfg.TargetHigh)
	cfg.MergeToleranceHours = getEnvFloat("GLUCOLENS_MERGE_TOLERANCE_HOURS", cfg.MergeToleranceHours)
	cfg.MinSegmentHours = getEnvFloat("GLUCOLENS_MIN_SEGMENT_HOURS", cfg.MinSegmentHours)
	cfg.SignificantTIRDelta = getEnvFloat("GLUCOLENS_SIGNIFICANT_TIR_DELTA", cfg.SignificantTIRDelta)
	cfg.SignificantCVDelta = getEnvFloat("GLUCOLENS_SIGNIFICANT_CV_DELTA", cfg.SignificantCVDelta)

	return cfg
}

func loadServerConfig() ServerConfig {
	port := os.Getenv("GLUCOLENS_PORT")
	if port == "" {
		port = "8080"
	}
	return ServerConfig{Port: port}
}

func loadExportConfig() ExportConfig {
	file := os.Getenv("GLUCOLENS_EXCEL_FILE")
	if file == "" {
		file = "glucolens_report.xlsx"
	}
	return ExportConfig{ExcelFile: file}
}

// Validate checks the analysis configuration for internally consistent values.
func (c AnalysisConfig) Validate() error {
	if c.MinSamples < 4 {
		return errors.ConfigInvalid("MinSamples must be at least 4")
	}
	if c.EmbedDim < 2 || c.EmbedLag < 1 {
		return errors.ConfigInvalid("embedding requires EmbedDim >= 2 and EmbedLag >= 1")
	}
	if c.MaxEmbedPoints < c.MinSamples || c.MaxApEnPoints < c.MinSamples {
		return errors.ConfigInvalid("downsample caps must not be below MinSamples")
	}
	if c.ApEnM < 1 || c.ApEnRFactor <= 0 {
		return errors.ConfigInvalid("ApEn requires ApEnM >= 1 and a positive ApEnRFactor")
	}
	if c.ShannonBins < 2 || c.HurstScales < 2 || c.FractalScales < 2 || c.CorrRadii < 2 {
		return errors.ConfigInvalid("bin and scale counts must be at least 2")
	}
	if c.TargetLow <= 0 || c.TargetHigh <= c.TargetLow {
		return errors.ConfigInvalid("target range requires 0 < TargetLow < TargetHigh")
	}
	if c.MergeToleranceHours <= 0 || c.MinSegmentHours <= 0 {
		return errors.ConfigInvalid("merge tolerance and minimum segment length must be positive")
	}
	if c.SignificantTIRDelta <= 0 || c.SignificantCVDelta <= 0 {
		return errors.ConfigInvalid("significance thresholds must be positive")
	}
	return nil
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
