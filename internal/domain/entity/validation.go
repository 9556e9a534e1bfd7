package entity

import (
	"fmt"
	"net/url"
)

// maxURLLength defines the maximum allowed length for submitted links to prevent DoS attacks.
const maxURLLength = 2048

// ValidateLink validates the well-formedness of a submitted video link.
// It checks that the URL parses, uses HTTP/HTTPS scheme, and has a host.
// No reachability or platform check is performed here; unsupported or
// unavailable videos surface as a fetch failure from the downloader.
func ValidateLink(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: "link", Message: "link is required"}
	}

	// DoS protection: enforce maximum URL length
	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "link",
			Message: fmt.Sprintf("link must not exceed %d characters", maxURLLength),
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return &ValidationError{Field: "link", Message: "link is not a valid URL"}
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: "link", Message: "link must use http or https scheme"}
	}

	if parsedURL.Host == "" {
		return &ValidationError{Field: "link", Message: "link must have a valid host"}
	}

	return nil
}

// ValidateUsername checks that a username is present and within sane bounds.
func ValidateUsername(username string) error {
	if username == "" {
		return &ValidationError{Field: "username", Message: "username is required"}
	}
	if len(username) > 64 {
		return &ValidationError{Field: "username", Message: "username must not exceed 64 characters"}
	}
	return nil
}
