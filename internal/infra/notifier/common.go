package notifier

import (
	"errors"
	"fmt"
	"time"
)

// contextKey keeps notifier context values from colliding with other packages.
type contextKey string

const requestIDKey contextKey = "request_id"

// The Discord and Slack notifiers share one error taxonomy so the retry
// loop can treat both webhooks uniformly.

// RateLimitError is a 429 from the webhook service, carrying how long the
// service asked us to wait.
type RateLimitError struct {
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (retry after %v)", e.Message, e.RetryAfter)
	}
	return fmt.Sprintf("rate limit exceeded (retry after %v)", e.RetryAfter)
}

// ClientError is a non-429 4xx response. Retrying would just repeat the
// same mistake.
type ClientError struct {
	StatusCode int
	Message    string
}

func (e *ClientError) Error() string {
	return e.Message
}

// ServerError is a 5xx response, usually transient.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return e.Message
}

// is429Error extracts the rate-limit details when err is a RateLimitError.
func is429Error(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}

// isRetryableError reports whether the error is worth retrying. Server
// errors and network failures qualify; client errors do not, and rate
// limits take the separate is429Error path.
func isRetryableError(err error) bool {
	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		return true
	}

	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return false
	}

	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return false
	}

	return true
}

// truncateContent trims text to fit within maxLength, appending suffix when
// anything was cut so readers know the text continues.
func truncateContent(text string, maxLength int, suffix string) string {
	if len(text) <= maxLength {
		return text
	}

	cut := maxLength - len(suffix)
	if cut < 0 {
		cut = 0
	}
	return text[:cut] + suffix
}
