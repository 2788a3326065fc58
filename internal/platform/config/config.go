package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	JWTSecret     string

	// Rate limiting, e.g. "100-M" for 100 requests per minute per client IP.
	RateLimit string

	// DefaultLowBalanceThreshold applies to new root accounts that do not
	// specify their own advisory threshold.
	DefaultLowBalanceThreshold decimal.Decimal
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("DEFAULT_LOW_BALANCE_THRESHOLD", "500")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	thresholdStr := viper.GetString("DEFAULT_LOW_BALANCE_THRESHOLD")
	threshold, err := decimal.NewFromString(thresholdStr)
	if err != nil || threshold.IsNegative() {
		threshold = decimal.NewFromInt(500)
		log.Printf("Warning: Invalid value for DEFAULT_LOW_BALANCE_THRESHOLD ('%s'). Defaulting to %s.\n", thresholdStr, threshold.String())
	}
	cfg.DefaultLowBalanceThreshold = threshold

	return cfg, nil
}
