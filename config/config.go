package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the system,
// such as server settings, the upstream chart API and the page views.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	CHART_BASE_URL=https://query1.finance.yahoo.com
//	CHART_INTERVAL=1d
//	CHART_RANGE=1mo
//	CHART_TIMEOUT=10s
//	DEFAULT_SYMBOL=AAPL
//	DISPLAY_TIMEZONE=Local
//	VIEW_TTL=30m
type Config struct {
	Server ServerConfig // HTTP server configuration
	Chart  ChartConfig  // Upstream chart API settings
	View   ViewConfig   // Page view settings
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port               string // The TCP port the HTTP server will listen on (e.g., "8080")
	RateLimitPerMinute int    // Requests allowed per client IP per minute
}

// ChartConfig defines how the upstream chart endpoint is queried.
//
// Fields:
//   - BaseURL: scheme and host of the finance API (path /v8/finance/chart is appended).
//   - Interval: bar interval requested (e.g., "1d").
//   - Range: lookback range requested (e.g., "1mo").
//   - Timeout: upper bound for a single upstream request.
//   - UserAgent: User-Agent header sent upstream.
type ChartConfig struct {
	BaseURL   string
	Interval  string
	Range     string
	Timeout   time.Duration
	UserAgent string
}

// ViewConfig controls the server-held page views.
//
// Fields:
//   - DefaultSymbol: symbol a fresh view starts with.
//   - TimeZone: IANA name (or "Local") used to format point dates.
//   - TTL: idle time after which a view is swept.
//   - SweepSpec: cron spec for the sweep job.
type ViewConfig struct {
	DefaultSymbol string
	TimeZone      string
	TTL           time.Duration
	SweepSpec     string
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing or invalid, validateConfig() will
//     terminate the app with a descriptive log message.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 60)

	viper.SetDefault("CHART_BASE_URL", "https://query1.finance.yahoo.com")
	viper.SetDefault("CHART_INTERVAL", "1d")
	viper.SetDefault("CHART_RANGE", "1mo")
	viper.SetDefault("CHART_TIMEOUT", "10s")
	viper.SetDefault("CHART_USER_AGENT", "Mozilla/5.0")

	viper.SetDefault("DEFAULT_SYMBOL", "AAPL")
	viper.SetDefault("DISPLAY_TIMEZONE", "Local")
	viper.SetDefault("VIEW_TTL", "30m")
	viper.SetDefault("VIEW_SWEEP_SPEC", "@every 1m")

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port:               viper.GetString("SERVER_PORT"),
			RateLimitPerMinute: viper.GetInt("RATE_LIMIT_PER_MINUTE"),
		},
		Chart: ChartConfig{
			BaseURL:   viper.GetString("CHART_BASE_URL"),
			Interval:  viper.GetString("CHART_INTERVAL"),
			Range:     viper.GetString("CHART_RANGE"),
			Timeout:   viper.GetDuration("CHART_TIMEOUT"),
			UserAgent: viper.GetString("CHART_USER_AGENT"),
		},
		View: ViewConfig{
			DefaultSymbol: viper.GetString("DEFAULT_SYMBOL"),
			TimeZone:      viper.GetString("DISPLAY_TIMEZONE"),
			TTL:           viper.GetDuration("VIEW_TTL"),
			SweepSpec:     viper.GetString("VIEW_SWEEP_SPEC"),
		},
	}

	validateConfig()
}

// Location resolves the configured display time zone, falling back to time.Local.
func (v ViewConfig) Location() *time.Location {
	if v.TimeZone == "" || v.TimeZone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(v.TimeZone)
	if err != nil {
		return time.Local
	}
	return loc
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing.
func validateConfig() {
	var missing []string

	if AppConfig.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if AppConfig.Chart.BaseURL == "" {
		missing = append(missing, "CHART_BASE_URL")
	}
	if AppConfig.Chart.Interval == "" {
		missing = append(missing, "CHART_INTERVAL")
	}
	if AppConfig.Chart.Range == "" {
		missing = append(missing, "CHART_RANGE")
	}
	if AppConfig.Chart.Timeout <= 0 {
		missing = append(missing, "CHART_TIMEOUT")
	}
	if AppConfig.View.TTL <= 0 {
		missing = append(missing, "VIEW_TTL")
	}
	if AppConfig.View.SweepSpec == "" {
		missing = append(missing, "VIEW_SWEEP_SPEC")
	}

	if len(missing) > 0 {
		log.Fatalf("❌ Missing required environment variables: %v\n", missing)
	}
}
