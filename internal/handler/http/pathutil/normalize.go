package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns defines the list of patterns for dynamic routes.
// Pre-compiled at initialization so normalization stays cheap on the hot path.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/blog-details/\d+$`), Template: "/blog-details/:id"},
}

// NormalizePath normalizes dynamic URL paths to prevent metrics label cardinality explosion.
// It converts paths with IDs (e.g., /blog-details/123) to template format
// (e.g., /blog-details/:id). Static paths remain unchanged.
//
// Query parameters and trailing slashes are stripped first:
//
//	NormalizePath("/blog-details/123")        // "/blog-details/:id"
//	NormalizePath("/blog-details/123/")       // "/blog-details/:id"
//	NormalizePath("/blog-list?page=2")        // "/blog-list"
//	NormalizePath("/health")                  // "/health" (unchanged)
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}

	// Static paths like /health, /metrics and /blog-list pass through unchanged.
	return path
}
