package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/korjavin/matchmygrocery/pkg/logger"
)

// Config holds all configuration for the application
type Config struct {
	// Telegram Bot configuration
	BotToken string

	// OpenAI configuration
	OpenAIAPIBase string
	OpenAIAPIKey  string
	OpenAIModel   string

	// HTTP API configuration
	HTTPAddr       string
	AllowedOrigins string

	// Storage configuration
	DataDir    string
	GCInterval time.Duration

	// Logging configuration
	LogLevel  string
	LogFormat string

	// Scheduler configuration
	RefreshInterval time.Duration
	// ReminderHour is the local hour of the daily shopping reminder; -1 disables it
	ReminderHour int

	// Application configuration
	Cuisines    []string
	DefaultSort string
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Global.Warn("Error loading .env file: %v", err)
	}

	cfg := &Config{}

	openAIAPIKey := os.Getenv("OPENAI_API_KEY")
	if openAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}
	cfg.OpenAIAPIKey = openAIAPIKey

	// Optional configurations with defaults
	cfg.BotToken = os.Getenv("BOT_TOKEN")
	cfg.OpenAIAPIBase = getEnvWithDefault("OPENAI_API_BASE", "https://api.openai.com/v1")
	cfg.OpenAIModel = getEnvWithDefault("OPENAI_MODEL", "gpt-4o-mini")
	cfg.HTTPAddr = getEnvWithDefault("HTTP_ADDR", ":8080")
	cfg.AllowedOrigins = getEnvWithDefault("ALLOWED_ORIGINS", "*")
	cfg.DataDir = getEnvWithDefault("DATA_DIR", "./data")
	cfg.LogLevel = getEnvWithDefault("LOG_LEVEL", "info")
	cfg.LogFormat = getEnvWithDefault("LOG_FORMAT", "console")
	cfg.DefaultSort = getEnvWithDefault("DEFAULT_SORT", "category")

	gcInterval, err := time.ParseDuration(getEnvWithDefault("GC_INTERVAL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid GC_INTERVAL: %w", err)
	}
	cfg.GCInterval = gcInterval

	refreshInterval, err := time.ParseDuration(getEnvWithDefault("REFRESH_INTERVAL", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	cfg.RefreshInterval = refreshInterval

	reminderHour, err := strconv.Atoi(getEnvWithDefault("REMINDER_HOUR", "-1"))
	if err != nil || reminderHour < -1 || reminderHour > 23 {
		return nil, fmt.Errorf("invalid REMINDER_HOUR %q: must be -1 or 0-23", os.Getenv("REMINDER_HOUR"))
	}
	cfg.ReminderHour = reminderHour

	// Parse cuisines
	cuisinesStr := getEnvWithDefault("CUISINES", "European,Italian,Asian")
	for _, cuisine := range strings.Split(cuisinesStr, ",") {
		if cuisine = strings.TrimSpace(cuisine); cuisine != "" {
			cfg.Cuisines = append(cfg.Cuisines, cuisine)
		}
	}

	return cfg, nil
}

// RequireBotToken returns an error when the Telegram bot token is missing
func (c *Config) RequireBotToken() error {
	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN environment variable is required")
	}
	return nil
}

// Redacted returns a copy of the configuration safe for logging
func (c *Config) Redacted() Config {
	logCfg := *c
	logCfg.BotToken = redact(logCfg.BotToken)
	logCfg.OpenAIAPIKey = redact(logCfg.OpenAIAPIKey)
	return logCfg
}

func redact(secret string) string {
	if len(secret) > 8 {
		return secret[:8] + "...REDACTED..."
	}
	if secret != "" {
		return "REDACTED"
	}
	return ""
}

// getEnvWithDefault returns the value of the environment variable or the default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
