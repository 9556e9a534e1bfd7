// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Article and User, along with
// their validation rules and domain-specific errors.
package entity

import "time"

// Article represents a blog article generated from a video transcript.
// Each article belongs to exactly one owner; articles are created once at the
// end of a successful generation pipeline run and never updated afterwards.
type Article struct {
	ID          int64
	OwnerID     int64
	SourceTitle string
	SourceLink  string
	Content     string
	CreatedAt   time.Time
}
