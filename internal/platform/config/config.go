package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/pennywiseapp/penny_wise_app/internal/core/recon"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// RateLimit uses ulule/limiter's formatted syntax, e.g. "100-M".
	RateLimit string

	// AliasDictPath points at the provider alias dictionary YAML file.
	// Empty means the built-in default dictionary is used.
	AliasDictPath string

	// Matching scoring policy. The constants were tuned empirically and
	// are policy rather than derived values, so they stay overridable.
	MatchHighThreshold     int
	MatchMediumThreshold   int
	MatchAmountTolerance   decimal.Decimal
	MatchDateToleranceDays int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	defaults := recon.DefaultConfig()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("ALIAS_DICT_PATH", "")
	viper.SetDefault("MATCH_HIGH_THRESHOLD", defaults.HighThreshold)
	viper.SetDefault("MATCH_MEDIUM_THRESHOLD", defaults.MediumThreshold)
	viper.SetDefault("MATCH_AMOUNT_TOLERANCE", defaults.AmountTolerance.String())
	viper.SetDefault("MATCH_DATE_TOLERANCE_DAYS", defaults.DateToleranceDays)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.AliasDictPath = viper.GetString("ALIAS_DICT_PATH")

	cfg.MatchHighThreshold = viper.GetInt("MATCH_HIGH_THRESHOLD")
	cfg.MatchMediumThreshold = viper.GetInt("MATCH_MEDIUM_THRESHOLD")
	cfg.MatchDateToleranceDays = viper.GetInt("MATCH_DATE_TOLERANCE_DAYS")

	tolerance, err := decimal.NewFromString(viper.GetString("MATCH_AMOUNT_TOLERANCE"))
	if err != nil {
		tolerance = defaults.AmountTolerance
		log.Printf("Warning: Invalid value for MATCH_AMOUNT_TOLERANCE ('%s'). Defaulting to %s.\n",
			viper.GetString("MATCH_AMOUNT_TOLERANCE"), tolerance.String())
	}
	cfg.MatchAmountTolerance = tolerance

	return cfg, nil
}

// MatcherConfig merges the configured policy overrides onto the default
// scoring constants.
func (c *Config) MatcherConfig() recon.Config {
	mc := recon.DefaultConfig()
	if c.MatchHighThreshold > 0 {
		mc.HighThreshold = c.MatchHighThreshold
	}
	if c.MatchMediumThreshold > 0 {
		mc.MediumThreshold = c.MatchMediumThreshold
	}
	if c.MatchDateToleranceDays > 0 {
		mc.DateToleranceDays = c.MatchDateToleranceDays
	}
	if c.MatchAmountTolerance.IsPositive() {
		mc.AmountTolerance = c.MatchAmountTolerance
	}
	return mc
}
