// Package circuitbreaker shields the service from failing upstreams. Each
// external dependency gets its own breaker built on
// github.com/sony/gobreaker, with trip thresholds tuned per dependency.
package circuitbreaker

import (
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// Config tunes a single breaker.
type Config struct {
	// Name identifies the breaker in logs.
	Name string

	// MaxRequests limits probe requests while half-open.
	MaxRequests uint32

	// Interval resets the closed-state counters periodically.
	Interval time.Duration

	// Timeout is how long an open breaker stays open before probing.
	Timeout time.Duration

	// FailureThreshold is the failure ratio that trips the breaker,
	// e.g. 0.6 trips at a 60% failure rate.
	FailureThreshold float64

	// MinRequests is how many calls must be observed before the ratio
	// is evaluated at all.
	MinRequests uint32
}

// DefaultConfig returns a breaker configuration with moderate thresholds.
func DefaultConfig(name string) Config {
	return Config{
		Name:             name,
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

// OpenAIAPIConfig returns the breaker settings for OpenAI API calls.
func OpenAIAPIConfig() Config {
	cfg := DefaultConfig("openai-api")
	return cfg
}

// ClaudeAPIConfig returns the breaker settings for Claude API calls.
func ClaudeAPIConfig() Config {
	cfg := DefaultConfig("claude-api")
	return cfg
}

// TranscriptionAPIConfig returns the breaker settings for transcription API
// calls. Jobs run for minutes, so the windows are longer and fewer probes
// are allowed.
func TranscriptionAPIConfig() Config {
	return Config{
		Name:             "assemblyai-api",
		MaxRequests:      2,
		Interval:         60 * time.Second,
		Timeout:          120 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      4,
	}
}

// MediaDownloadConfig returns the breaker settings for media downloads.
// Downloads fail for per-video reasons more often than host-wide ones, so
// the threshold is higher.
func MediaDownloadConfig() Config {
	return Config{
		Name:             "media-download",
		MaxRequests:      3,
		Interval:         60 * time.Second,
		Timeout:          120 * time.Second,
		FailureThreshold: 0.7,
		MinRequests:      5,
	}
}

// FeedFetchConfig returns the breaker settings for channel feed fetches.
func FeedFetchConfig() Config {
	cfg := DefaultConfig("channel-feed")
	return cfg
}

// CircuitBreaker wraps a gobreaker instance with state logging.
type CircuitBreaker struct {
	breaker *gobreaker.CircuitBreaker
	name    string
}

// New builds a breaker from cfg. State transitions are logged at warn level
// so operators notice a dependency going dark.
func New(cfg Config) *CircuitBreaker {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			slog.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	}

	return &CircuitBreaker{
		breaker: gobreaker.NewCircuitBreaker(settings),
		name:    cfg.Name,
	}
}

// Execute runs fn through the breaker. When the breaker is open the call
// fails fast with gobreaker.ErrOpenState.
func (cb *CircuitBreaker) Execute(fn func() (interface{}, error)) (interface{}, error) {
	return cb.breaker.Execute(fn)
}

// State returns the breaker's current state.
func (cb *CircuitBreaker) State() gobreaker.State {
	return cb.breaker.State()
}

// Name returns the breaker's configured name.
func (cb *CircuitBreaker) Name() string {
	return cb.name
}

// IsOpen reports whether the breaker is currently rejecting calls.
func (cb *CircuitBreaker) IsOpen() bool {
	return cb.breaker.State() == gobreaker.StateOpen
}
