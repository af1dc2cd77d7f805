package config

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"profin/internal/report"
)

type Config struct {
	// Output
	Currency string
	Format   string
	Verbose  bool

	// Runner
	Workers int

	// Logging
	LogLevel string
}

func Load() *Config {
	cfg := &Config{
		Currency: getEnv("PROFIN_CURRENCY", "CZK"),
		Format:   getEnv("PROFIN_FORMAT", report.FormatPretty),
		Verbose:  getEnvBool("PROFIN_VERBOSE", false),

		Workers: getEnvInt("PROFIN_WORKERS", 4),

		LogLevel: getEnv("PROFIN_LOG_LEVEL", "info"),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if !slices.Contains(report.Formats, c.Format) {
		errors = append(errors, fmt.Sprintf("invalid output format '%s': must be one of %v", c.Format, report.Formats))
	}

	if c.Workers < 1 {
		errors = append(errors, fmt.Sprintf("invalid worker count %d: must be at least 1", c.Workers))
	} else if c.Workers > 64 {
		errors = append(errors, fmt.Sprintf("invalid worker count %d: must be at most 64", c.Workers))
	}

	if _, err := c.SlogLevel(); err != nil {
		errors = append(errors, err.Error())
	}

	if len(c.Currency) > 8 {
		errors = append(errors, fmt.Sprintf("invalid currency label '%s': must be at most 8 characters", c.Currency))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel)
	}
	return level, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
