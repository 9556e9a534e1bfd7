// Package article provides use cases for querying generated articles.
// It implements business logic for listing articles and enforcing ownership
// on detail views, delegating persistence to the article repository.
package article

import "errors"

// Sentinel errors for article use case operations.
var (
	// ErrArticleNotFound indicates that the requested article was not found.
	ErrArticleNotFound = errors.New("article not found")

	// ErrInvalidArticleID indicates that the provided article ID is invalid.
	// Article IDs must be positive integers.
	ErrInvalidArticleID = errors.New("invalid article ID")

	// ErrAccessDenied indicates that the article exists but belongs to a
	// different owner. Detail views are restricted to the article's owner.
	ErrAccessDenied = errors.New("article belongs to a different owner")
)
