// Package blog provides HTTP handlers for the article generation and reading
// endpoints.
package blog

import (
	"time"

	"tubescribe/internal/domain/entity"
)

// DTO represents the JSON structure for a generated article.
type DTO struct {
	ID          int64     `json:"id" example:"1"`
	SourceTitle string    `json:"source_title" example:"How Go Schedules Goroutines"`
	SourceLink  string    `json:"source_link" example:"https://www.youtube.com/watch?v=dQw4w9WgXcQ"`
	Content     string    `json:"content" example:"Go's scheduler multiplexes goroutines onto OS threads..."`
	CreatedAt   time.Time `json:"created_at" example:"2025-10-26T12:00:00Z"`
}

// toDTO converts a domain article to its transfer representation.
// The owner ID is deliberately absent: every endpoint already scopes results
// to the authenticated user.
func toDTO(article *entity.Article) DTO {
	return DTO{
		ID:          article.ID,
		SourceTitle: article.SourceTitle,
		SourceLink:  article.SourceLink,
		Content:     article.Content,
		CreatedAt:   article.CreatedAt,
	}
}
