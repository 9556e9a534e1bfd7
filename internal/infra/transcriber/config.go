package transcriber

import (
	"fmt"
	"time"

	"tubescribe/pkg/config"
)

// Config holds configuration parameters for the transcriber.
// Configuration is loaded from environment variables with fallback to defaults.
type Config struct {
	// Timeout is the maximum duration for a single transcription, including
	// upload and polling. Loaded from TRANSCRIBE_TIMEOUT. Default: 15m.
	Timeout time.Duration
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	// Transcription of long videos is slow; allow up to an hour.
	if err := config.ValidateDurationRange(c.Timeout, time.Minute, time.Hour); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}

// LoadConfig loads transcriber configuration from environment variables.
//
// Environment variables:
//   - TRANSCRIBE_TIMEOUT: Transcription timeout (default: 15m, range: 1m-1h)
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Timeout: config.GetEnvDuration("TRANSCRIBE_TIMEOUT", 15*time.Minute),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid transcriber configuration: %w", err)
	}

	return cfg, nil
}
