package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the monitor service.
// All environment variables are read here and nowhere else.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Redis (state store backend)
	Redis RedisConfig

	// LINE Messaging API (alert transport)
	Line LineConfig

	// Yahoo Finance chart API
	Yahoo YahooConfig

	// Monitor
	Monitor MonitorConfig

	// Trigger endpoint auth
	CronSecret string

	// Logging
	LogLevel  string
	LogFormat string
	LogFile   string // when set, logs rotate to this file as well as stdout
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// LineConfig holds LINE Messaging API credentials.
type LineConfig struct {
	ChannelToken string
	UserID       string
	BaseURL      string
}

// YahooConfig holds the chart API endpoint.
type YahooConfig struct {
	BaseURL string
}

// MonitorConfig holds evaluation-loop settings.
type MonitorConfig struct {
	// Schedule is a cron expression (with seconds) for the in-process scheduler.
	Schedule string
	// WatchlistPath points to the instrument watchlist YAML.
	// Empty means the built-in default basket.
	WatchlistPath string
}

// Load reads configuration from environment variables.
// Only this function calls os.Getenv.
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8087"),
		Env:  getEnv("ENV", "development"),

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", true),
		},

		Line: LineConfig{
			ChannelToken: getEnv("CHANNEL_ACCESS_TOKEN", ""),
			UserID:       getEnv("USER_ID", ""),
			BaseURL:      getEnv("LINE_BASE_URL", "https://api.line.me"),
		},

		Yahoo: YahooConfig{
			BaseURL: getEnv("YAHOO_BASE_URL", "https://query1.finance.yahoo.com"),
		},

		Monitor: MonitorConfig{
			Schedule:      getEnv("MONITOR_SCHEDULE", "0 */5 * * * 1-5"),
			WatchlistPath: getEnv("WATCHLIST_PATH", ""),
		},

		CronSecret: getEnv("CRON_SECRET", ""),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
		LogFile:   getEnv("LOG_FILE", ""),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks required configuration values.
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}
	return nil
}

// HasLineCredentials reports whether the alert transport is usable.
// A monitor run must abort before any state mutation when this is false.
func (c *Config) HasLineCredentials() bool {
	return c.Line.ChannelToken != "" && c.Line.UserID != ""
}

// loadEnvFile tries to load .env from a few conventional locations.
func loadEnvFile() {
	paths := []string{".env"}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
