package article

import (
	"context"
	"fmt"

	"tubescribe/internal/common/pagination"
	"tubescribe/internal/domain/entity"
	"tubescribe/internal/repository"
)

// Service provides article query use cases.
// It handles ownership enforcement and delegates persistence to the repository.
type Service struct {
	Repo repository.ArticleRepository
}

// PaginatedArticles bundles one page of articles with pagination metadata.
type PaginatedArticles struct {
	Data       []*entity.Article
	Pagination pagination.Metadata
}

// ListByOwnerPaginated retrieves one page of the owner's articles, newest
// first, together with pagination metadata. A page past the end of the
// collection yields an empty data slice.
func (s *Service) ListByOwnerPaginated(ctx context.Context, ownerID int64, params pagination.Params) (*PaginatedArticles, error) {
	strategy := pagination.OffsetStrategy{}
	query := strategy.CalculateQuery(params)

	total, err := s.Repo.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("count articles by owner: %w", err)
	}

	articles, err := s.Repo.ListByOwnerPage(ctx, ownerID, query.Limit, query.Offset)
	if err != nil {
		return nil, fmt.Errorf("list articles page: %w", err)
	}
	if articles == nil {
		articles = []*entity.Article{}
	}

	return &PaginatedArticles{
		Data:       articles,
		Pagination: strategy.BuildMetadata(params, total, false),
	}, nil
}

// GetForOwner retrieves a single article by its ID on behalf of the given
// owner.
// Returns ErrInvalidArticleID if the ID is not positive.
// Returns ErrArticleNotFound if the article does not exist.
// Returns ErrAccessDenied if the article belongs to a different owner.
func (s *Service) GetForOwner(ctx context.Context, id, ownerID int64) (*entity.Article, error) {
	if id <= 0 {
		return nil, ErrInvalidArticleID
	}

	art, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if art == nil {
		return nil, ErrArticleNotFound
	}
	if art.OwnerID != ownerID {
		return nil, ErrAccessDenied
	}
	return art, nil
}
