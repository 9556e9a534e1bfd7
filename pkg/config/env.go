// Package config reads typed configuration values from the process
// environment, falling back to defaults when a variable is unset or
// malformed.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// GetEnvString returns the environment variable's value, or defaultValue
// when the variable is unset or empty. No validation, no logging.
//
//	mediaDir := GetEnvString("MEDIA_DIR", "media")
func GetEnvString(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// GetEnvInt parses the environment variable as an integer. Unparseable
// values fall back to defaultValue with a warning, so a typo in deployment
// config degrades instead of crashing.
//
//	port := GetEnvInt("PORT", 8080)
func GetEnvInt(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer value for environment variable, using default",
			slog.String("key", key),
			slog.String("value", v),
			slog.Int("default", defaultValue),
			slog.String("error", err.Error()))
		return defaultValue
	}
	return n
}

// GetEnvBool parses the environment variable as a boolean using the same
// forms strconv.ParseBool accepts ("1", "t", "true", "0", "f", "false" in
// any common casing). Invalid values fall back with a warning.
func GetEnvBool(key string, defaultValue bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid boolean value for environment variable, using default",
			slog.String("key", key),
			slog.String("value", v),
			slog.Bool("default", defaultValue))
		return defaultValue
	}
	return b
}

// GetEnvDuration parses the environment variable with time.ParseDuration
// (e.g. "1m", "30s", "1h30m"). Invalid values fall back with a warning.
//
//	timeout := GetEnvDuration("TRANSCRIBE_TIMEOUT", 10*time.Minute)
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("invalid duration value for environment variable, using default",
			slog.String("key", key),
			slog.String("value", v),
			slog.String("default", defaultValue.String()),
			slog.String("error", err.Error()))
		return defaultValue
	}
	return d
}

// GetEnvStringList splits the environment variable on commas, trimming
// whitespace and dropping empty entries. When the variable is unset or
// nothing survives the filtering, defaultValue is returned.
func GetEnvStringList(key string, defaultValue []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}

	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
