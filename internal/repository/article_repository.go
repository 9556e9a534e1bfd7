// Package repository defines persistence interfaces for the domain entities.
// Concrete implementations live under internal/infra/adapter/persistence.
package repository

import (
	"context"

	"tubescribe/internal/domain/entity"
)

// ArticleRepository persists generated articles.
// Articles are append-only: there is no update or delete operation because the
// generation workflow never mutates a persisted article.
type ArticleRepository interface {
	// Create persists a new article and sets its ID on success.
	Create(ctx context.Context, article *entity.Article) error
	// Get retrieves an article by ID.
	// Returns (nil, nil) if the article is not found.
	Get(ctx context.Context, id int64) (*entity.Article, error)
	// ListByOwnerPage retrieves one page of the owner's articles, newest
	// first. Offset and limit follow SQL semantics.
	ListByOwnerPage(ctx context.Context, ownerID int64, limit, offset int) ([]*entity.Article, error)
	// CountByOwner returns the number of articles belonging to the given owner.
	CountByOwner(ctx context.Context, ownerID int64) (int64, error)
}
