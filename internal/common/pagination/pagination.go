// Package pagination implements offset-based pagination for list endpoints:
// query parameter parsing, offset math, response envelopes, and metrics.
package pagination

import (
	"tubescribe/pkg/config"
)

// Config bounds the page and limit parameters a client may request.
type Config struct {
	DefaultPage  int // Page used when the query omits one (1-based)
	DefaultLimit int // Page size used when the query omits one
	MaxLimit     int // Upper bound on the requested page size
}

// DefaultConfig returns the built-in bounds: page 1, 20 items, max 100.
func DefaultConfig() Config {
	return Config{
		DefaultPage:  1,
		DefaultLimit: 20,
		MaxLimit:     100,
	}
}

// LoadFromEnv reads the pagination bounds from PAGINATION_DEFAULT_PAGE,
// PAGINATION_DEFAULT_LIMIT, and PAGINATION_MAX_LIMIT, falling back to the
// defaults for unset or unparseable values.
func LoadFromEnv() Config {
	return Config{
		DefaultPage:  config.GetEnvInt("PAGINATION_DEFAULT_PAGE", 1),
		DefaultLimit: config.GetEnvInt("PAGINATION_DEFAULT_LIMIT", 20),
		MaxLimit:     config.GetEnvInt("PAGINATION_MAX_LIMIT", 100),
	}
}
