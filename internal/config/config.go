package config

import (
	"os"
	"strconv"
	"time"

	"sheetdesk/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Import   ImportConfig
	View     ViewConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// ImportConfig holds spreadsheet import settings
type ImportConfig struct {
	// IdentityPolicy selects row identity for reconciliation:
	// "first_column_key" or "content_hash"
	IdentityPolicy string
	MaxUploadBytes int64
}

// ViewConfig holds query pipeline input-handling settings
type ViewConfig struct {
	FilterDebounce time.Duration
	FrameInterval  time.Duration
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Import: ImportConfig{
			IdentityPolicy: getEnvOrDefault("IDENTITY_POLICY", "first_column_key"),
			MaxUploadBytes: int64(getEnvIntOrDefault("MAX_UPLOAD_MB", 32)) << 20,
		},
		View: ViewConfig{
			FilterDebounce: getEnvDurationOrDefault("FILTER_DEBOUNCE", 300*time.Millisecond),
			FrameInterval:  getEnvDurationOrDefault("FRAME_INTERVAL", 16*time.Millisecond),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Database.URL == "" {
		return errors.ConfigInvalid("DATABASE_URL is required")
	}
	if config.Import.IdentityPolicy != "first_column_key" && config.Import.IdentityPolicy != "content_hash" {
		return errors.ConfigInvalid("IDENTITY_POLICY must be first_column_key or content_hash")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
