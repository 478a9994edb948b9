package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glucolens/internal/errors"
)

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Analysis.MinSamples)
	assert.Equal(t, 3.9, cfg.Analysis.TargetLow)
	assert.Equal(t, 10.0, cfg.Analysis.TargetHigh)
	assert.Equal(t, 24.0, cfg.Analysis.MergeToleranceHours)
	assert.Equal(t, 36.0, cfg.Analysis.MinSegmentHours)
	assert.Equal(t, 15.0, cfg.Analysis.SignificantTIRDelta)
	assert.Equal(t, 10.0, cfg.Analysis.SignificantCVDelta)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GLUCOLENS_MIN_SAMPLES", "30")
	t.Setenv("GLUCOLENS_TARGET_HIGH", "7.8")
	t.Setenv("GLUCOLENS_MERGE_TOLERANCE_HOURS", "12")
	t.Setenv("GLUCOLENS_SIGNIFICANT_CV_DELTA", "20")
	t.Setenv("GLUCOLENS_PORT", "9999")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Analysis.MinSamples)
	assert.Equal(t, 7.8, cfg.Analysis.TargetHigh)
	assert.Equal(t, 12.0, cfg.Analysis.MergeToleranceHours)
	assert.Equal(t, 20.0, cfg.Analysis.SignificantCVDelta)
	assert.Equal(t, "9999", cfg.Server.Port)
}

func TestLoad_IgnoresMalformedEnv(t *testing.T) {
	t.Setenv("GLUCOLENS_MIN_SAMPLES", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Analysis.MinSamples)
}

func TestLoad_RejectsInvalidConfig(t *testing.T) {
	t.Setenv("GLUCOLENS_TARGET_LOW", "11")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*AnalysisConfig)
	}{
		{"min samples too low", func(c *AnalysisConfig) { c.MinSamples = 1 }},
		{"embed dim too low", func(c *AnalysisConfig) { c.EmbedDim = 1 }},
		{"downsample cap below min samples", func(c *AnalysisConfig) { c.MaxEmbedPoints = 5 }},
		{"zero tolerance radius", func(c *AnalysisConfig) { c.ApEnRFactor = 0 }},
		{"single bin", func(c *AnalysisConfig) { c.ShannonBins = 1 }},
		{"inverted target range", func(c *AnalysisConfig) { c.TargetLow, c.TargetHigh = 10, 4 }},
		{"zero merge tolerance", func(c *AnalysisConfig) { c.MergeToleranceHours = 0 }},
		{"zero significance threshold", func(c *AnalysisConfig) { c.SignificantTIRDelta = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
