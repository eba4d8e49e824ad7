package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SourceYahoo        = "yahoo"
	SourceAlphaVantage = "alphavantage"
)

// Config holds application configuration loaded from environment variables
type Config struct {
	Port             string
	DataSource       string
	AVKey            string
	PGURL            string
	CacheTTL         time.Duration
	DefaultPeriod    string
	BaseValue        float64
	RiskFreeRate     float64
	FetchConcurrency int
	AssetsFile       string
	WarmCron         string
	LogLevel         string
	LogFile          string
	LogJSON          bool
	Proxy            string
}

// Load reads configuration from environment variables. A .env file in the
// working directory is loaded first; variables already set in the shell win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		DataSource:    strings.ToLower(getEnv("DATA_SOURCE", SourceYahoo)),
		AVKey:         os.Getenv("AV_KEY"),
		PGURL:         os.Getenv("PG_URL"),
		DefaultPeriod: getEnv("DEFAULT_PERIOD", "1y"),
		AssetsFile:    os.Getenv("ASSETS_FILE"),
		WarmCron:      os.Getenv("WARM_CRON"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFile:       os.Getenv("LOG_FILE"),
		LogJSON:       strings.EqualFold(os.Getenv("LOG_FORMAT"), "json"),
		Proxy:         os.Getenv("HTTPS_PROXY"),
	}

	var err error
	if cfg.CacheTTL, err = time.ParseDuration(getEnv("CACHE_TTL", "5m")); err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}
	if cfg.BaseValue, err = strconv.ParseFloat(getEnv("BASE_VALUE", "100"), 64); err != nil {
		return nil, fmt.Errorf("invalid BASE_VALUE: %w", err)
	}
	if cfg.BaseValue <= 0 {
		return nil, fmt.Errorf("BASE_VALUE must be positive, got %v", cfg.BaseValue)
	}
	if cfg.RiskFreeRate, err = strconv.ParseFloat(getEnv("RISK_FREE_RATE", "0"), 64); err != nil {
		return nil, fmt.Errorf("invalid RISK_FREE_RATE: %w", err)
	}
	if cfg.FetchConcurrency, err = strconv.Atoi(getEnv("FETCH_CONCURRENCY", "4")); err != nil {
		return nil, fmt.Errorf("invalid FETCH_CONCURRENCY: %w", err)
	}
	if cfg.FetchConcurrency < 1 {
		return nil, fmt.Errorf("FETCH_CONCURRENCY must be at least 1, got %d", cfg.FetchConcurrency)
	}

	switch cfg.DataSource {
	case SourceYahoo:
	case SourceAlphaVantage:
		if cfg.AVKey == "" {
			return nil, fmt.Errorf("AV_KEY environment variable is required when DATA_SOURCE=alphavantage")
		}
	default:
		return nil, fmt.Errorf("unknown DATA_SOURCE %q: must be %s or %s", cfg.DataSource, SourceYahoo, SourceAlphaVantage)
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
