package config_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pennywiseapp/penny_wise_app/internal/core/recon"
	"github.com/pennywiseapp/penny_wise_app/internal/platform/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.IsProduction)
	assert.Equal(t, "100-M", cfg.RateLimit)
	assert.Empty(t, cfg.AliasDictPath)

	defaults := recon.DefaultConfig()
	assert.Equal(t, defaults.HighThreshold, cfg.MatchHighThreshold)
	assert.Equal(t, defaults.MediumThreshold, cfg.MatchMediumThreshold)
	assert.Equal(t, defaults.DateToleranceDays, cfg.MatchDateToleranceDays)
	assert.True(t, defaults.AmountTolerance.Equal(cfg.MatchAmountTolerance))
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("IS_PRODUCTION", "true")
	t.Setenv("MATCH_HIGH_THRESHOLD", "90")
	t.Setenv("MATCH_AMOUNT_TOLERANCE", "2.50")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsProduction)
	assert.Equal(t, 90, cfg.MatchHighThreshold)
	assert.True(t, decimal.RequireFromString("2.50").Equal(cfg.MatchAmountTolerance))
}

func TestLoadConfig_InvalidAmountToleranceFallsBack(t *testing.T) {
	t.Setenv("MATCH_AMOUNT_TOLERANCE", "not-a-number")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.True(t, recon.DefaultConfig().AmountTolerance.Equal(cfg.MatchAmountTolerance))
}

func TestMatcherConfig_MergesOverrides(t *testing.T) {
	cfg := &config.Config{
		MatchHighThreshold:     85,
		MatchAmountTolerance:   decimal.RequireFromString("0.50"),
		MatchDateToleranceDays: 5,
	}

	mc := cfg.MatcherConfig()
	assert.Equal(t, 85, mc.HighThreshold)
	assert.Equal(t, 5, mc.DateToleranceDays)
	assert.True(t, decimal.RequireFromString("0.50").Equal(mc.AmountTolerance))
	// Unset knobs keep their defaults.
	assert.Equal(t, recon.DefaultConfig().MediumThreshold, mc.MediumThreshold)
}
