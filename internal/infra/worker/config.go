// Package worker provides the media retention sweeper and its operational
// plumbing (config, metrics, health server) for cmd/worker.
package worker

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"tubescribe/pkg/config"
)

// SweeperConfig controls the media retention sweeper.
//
// The sweeper is opt-in: when MEDIA_RETENTION is unset the media directory
// keeps accumulating files, which is the documented default behavior of the
// generation pipeline. Setting a retention enables the cron job.
type SweeperConfig struct {
	// CronSchedule is the standard 5-field cron expression for sweep runs.
	// Loaded from SWEEP_SCHEDULE. Default: "0 4 * * *" (daily at 04:00).
	CronSchedule string

	// Timezone is the IANA timezone the schedule is evaluated in.
	// Loaded from WORKER_TIMEZONE. Default: "UTC".
	Timezone string

	// Retention is how long a downloaded audio file is kept. Zero disables
	// sweeping entirely. Loaded from MEDIA_RETENTION (e.g. "720h").
	Retention time.Duration

	// MaxConcurrent bounds how many files are removed in parallel.
	// Loaded from SWEEP_MAX_CONCURRENT. Default: 4.
	MaxConcurrent int

	// SweepTimeout is the maximum duration of a single sweep run.
	// Loaded from SWEEP_TIMEOUT. Default: 10m.
	SweepTimeout time.Duration

	// HealthPort is the port of the worker health server.
	// Loaded from WORKER_HEALTH_PORT. Default: 9091.
	HealthPort int
}

// Enabled reports whether a retention was configured.
func (c *SweeperConfig) Enabled() bool {
	return c.Retention > 0
}

// Validate checks the configuration. A zero retention is valid (sweeping
// disabled); everything else must parse.
func (c *SweeperConfig) Validate() error {
	if _, err := cron.ParseStandard(c.CronSchedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", c.CronSchedule, err)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	if c.Retention < 0 {
		return fmt.Errorf("retention cannot be negative, got %v", c.Retention)
	}
	if c.MaxConcurrent < 1 || c.MaxConcurrent > 64 {
		return fmt.Errorf("max concurrent must be between 1 and 64, got %d", c.MaxConcurrent)
	}
	if err := config.ValidatePositiveDuration(c.SweepTimeout); err != nil {
		return fmt.Errorf("invalid sweep timeout: %w", err)
	}
	if c.HealthPort < 1024 || c.HealthPort > 65535 {
		return fmt.Errorf("health port must be between 1024 and 65535, got %d", c.HealthPort)
	}
	return nil
}

// LoadSweeperConfig loads sweeper configuration from environment variables.
//
// Environment variables:
//   - SWEEP_SCHEDULE: cron expression (default: "0 4 * * *")
//   - WORKER_TIMEZONE: IANA timezone (default: "UTC")
//   - MEDIA_RETENTION: retention duration; unset or 0 disables sweeping
//   - SWEEP_MAX_CONCURRENT: parallel removals (default: 4)
//   - SWEEP_TIMEOUT: per-run timeout (default: 10m)
//   - WORKER_HEALTH_PORT: health server port (default: 9091)
func LoadSweeperConfig() (*SweeperConfig, error) {
	cfg := &SweeperConfig{
		CronSchedule:  config.GetEnvString("SWEEP_SCHEDULE", "0 4 * * *"),
		Timezone:      config.GetEnvString("WORKER_TIMEZONE", "UTC"),
		Retention:     config.GetEnvDuration("MEDIA_RETENTION", 0),
		MaxConcurrent: config.GetEnvInt("SWEEP_MAX_CONCURRENT", 4),
		SweepTimeout:  config.GetEnvDuration("SWEEP_TIMEOUT", 10*time.Minute),
		HealthPort:    config.GetEnvInt("WORKER_HEALTH_PORT", 9091),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sweeper configuration: %w", err)
	}
	return cfg, nil
}
