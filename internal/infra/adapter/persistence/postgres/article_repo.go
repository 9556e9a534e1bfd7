// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tubescribe/internal/domain/entity"
	"tubescribe/internal/observability/metrics"
	"tubescribe/internal/repository"
)

// ArticleRepo implements the ArticleRepository interface using PostgreSQL.
type ArticleRepo struct{ db *sql.DB }

// NewArticleRepo creates a new PostgreSQL-backed article repository.
func NewArticleRepo(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepo{db: db}
}

// Create persists a new article and fills in the generated ID.
func (repo *ArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("article_create", time.Since(start)) }()

	const query = `
INSERT INTO articles (owner_id, source_title, source_link, content, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		article.OwnerID, article.SourceTitle, article.SourceLink,
		article.Content, article.CreatedAt,
	).Scan(&article.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

// Get retrieves an article by ID. Returns (nil, nil) when not found.
func (repo *ArticleRepo) Get(ctx context.Context, id int64) (*entity.Article, error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("article_get", time.Since(start)) }()

	const query = `
SELECT id, owner_id, source_title, source_link, content, created_at
FROM articles
WHERE id = $1
LIMIT 1`
	var article entity.Article
	err := repo.db.QueryRowContext(ctx, query, id).Scan(
		&article.ID, &article.OwnerID, &article.SourceTitle,
		&article.SourceLink, &article.Content, &article.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("Get: QueryRowContext: %w", err)
	}
	return &article, nil
}

// ListByOwnerPage retrieves one page of the owner's articles, newest first.
func (repo *ArticleRepo) ListByOwnerPage(ctx context.Context, ownerID int64, limit, offset int) ([]*entity.Article, error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("article_list_by_owner_page", time.Since(start)) }()

	const query = `
SELECT id, owner_id, source_title, source_link, content, created_at
FROM articles
WHERE owner_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
	rows, err := repo.db.QueryContext(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ListByOwnerPage: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]*entity.Article, 0, limit)
	for rows.Next() {
		var article entity.Article
		if err := rows.Scan(&article.ID, &article.OwnerID, &article.SourceTitle,
			&article.SourceLink, &article.Content, &article.CreatedAt); err != nil {
			return nil, fmt.Errorf("ListByOwnerPage: Scan: %w", err)
		}
		articles = append(articles, &article)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListByOwnerPage: rows.Err: %w", err)
	}
	return articles, nil
}

// CountByOwner returns the number of articles belonging to one owner.
func (repo *ArticleRepo) CountByOwner(ctx context.Context, ownerID int64) (int64, error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("article_count_by_owner", time.Since(start)) }()

	const query = `SELECT COUNT(*) FROM articles WHERE owner_id = $1`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query, ownerID).Scan(&count); err != nil {
		return 0, fmt.Errorf("CountByOwner: %w", err)
	}
	return count, nil
}
