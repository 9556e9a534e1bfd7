package pagination

import (
	"fmt"
	"net/http"
	"strconv"
)

// Params is the validated page selection from a list request.
type Params struct {
	Page  int // 1-based page number
	Limit int // Items per page
}

// ParseQueryParams reads page and limit from the request query string.
// Missing parameters take the configured defaults; present but invalid
// parameters (non-integer, page < 1, limit outside 1..MaxLimit) return an
// error suitable for a 400 response.
func ParseQueryParams(r *http.Request, cfg Config) (Params, error) {
	params := Params{
		Page:  cfg.DefaultPage,
		Limit: cfg.DefaultLimit,
	}

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return params, fmt.Errorf("invalid query parameter: page must be a positive integer")
		}
		params.Page = page
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > cfg.MaxLimit {
			return params, fmt.Errorf("invalid query parameter: limit must be between 1 and %d", cfg.MaxLimit)
		}
		params.Limit = limit
	}

	return params, nil
}

// WithDefaults repairs out-of-range values instead of rejecting them:
// non-positive page or limit fall back to the defaults, oversized limits
// are capped at MaxLimit. Used for params built in code rather than parsed
// from a request.
func (p Params) WithDefaults(cfg Config) Params {
	if p.Page <= 0 {
		p.Page = cfg.DefaultPage
	}
	if p.Limit <= 0 {
		p.Limit = cfg.DefaultLimit
	}
	if p.Limit > cfg.MaxLimit {
		p.Limit = cfg.MaxLimit
	}
	return p
}
