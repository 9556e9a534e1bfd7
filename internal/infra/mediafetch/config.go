package mediafetch

import (
	"fmt"
	"os"
	"time"

	"tubescribe/pkg/config"
)

// Config holds configuration parameters for the media fetcher.
// Configuration is loaded from environment variables with fallback to defaults.
type Config struct {
	// Dir is the directory where downloaded media files are stored.
	// Files accumulate in this directory; nothing deletes them after a
	// pipeline run unless the retention sweeper is enabled.
	// Loaded from MEDIA_DIR. Default: "media".
	Dir string

	// Timeout is the maximum duration for a single download.
	// Loaded from MEDIA_FETCH_TIMEOUT. Default: 5m.
	Timeout time.Duration
}

// Check reports whether the media directory exists and is writable.
// Used by the health endpoint: a broken media dir fails every pipeline run
// at the fetch stage, so it should fail readiness too.
func (c *Config) Check() error {
	info, err := os.Stat(c.Dir)
	if err != nil {
		return fmt.Errorf("media dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("media dir %q is not a directory", c.Dir)
	}

	probe, err := os.CreateTemp(c.Dir, ".healthcheck-*")
	if err != nil {
		return fmt.Errorf("media dir not writable: %w", err)
	}
	name := probe.Name()
	if err := probe.Close(); err != nil {
		return fmt.Errorf("media dir probe: %w", err)
	}
	if err := os.Remove(name); err != nil {
		return fmt.Errorf("media dir probe cleanup: %w", err)
	}
	return nil
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.Dir == "" {
		return fmt.Errorf("media dir cannot be empty")
	}
	if err := config.ValidatePositiveDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}

// LoadConfig loads media fetcher configuration from environment variables
// and ensures the media directory exists.
//
// Environment variables:
//   - MEDIA_DIR: Download directory (default: "media")
//   - MEDIA_FETCH_TIMEOUT: Download timeout (default: 5m)
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Dir:     config.GetEnvString("MEDIA_DIR", "media"),
		Timeout: config.GetEnvDuration("MEDIA_FETCH_TIMEOUT", 5*time.Minute),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid media fetch configuration: %w", err)
	}

	if err := os.MkdirAll(cfg.Dir, 0o750); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}

	return cfg, nil
}
