// Package pathutil provides helpers for extracting values from URL paths.
package pathutil

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidID is returned when the ID in the URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

// ExtractID extracts and parses an integer ID from a URL path.
// It removes the given prefix and parses the remainder as a positive int64.
//
//	id, err := ExtractID("/blog-details/123", "/blog-details/")
//	// id == 123
//
// Returns ErrInvalidID when the remainder is not a positive integer.
func ExtractID(path, prefix string) (int64, error) {
	idStr := strings.TrimPrefix(path, prefix)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
