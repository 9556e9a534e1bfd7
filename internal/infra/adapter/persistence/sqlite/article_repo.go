// Package sqlite provides SQLite implementations of repository interfaces.
// It targets the pure-Go modernc.org/sqlite driver and is intended for local
// development; PostgreSQL is the production backend.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"tubescribe/internal/domain/entity"
	"tubescribe/internal/repository"
)

// ArticleRepo implements the ArticleRepository interface using SQLite.
type ArticleRepo struct{ db *sql.DB }

// NewArticleRepo creates a new SQLite-backed article repository.
func NewArticleRepo(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepo{db: db}
}

// Create persists a new article and fills in the generated ID.
func (repo *ArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	const query = `
INSERT INTO articles (owner_id, source_title, source_link, content, created_at)
VALUES (?, ?, ?, ?, ?)`
	res, err := repo.db.ExecContext(ctx, query,
		article.OwnerID, article.SourceTitle, article.SourceLink,
		article.Content, article.CreatedAt)
	if err != nil {
		return fmt.Errorf("Create: ExecContext: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("Create: LastInsertId: %w", err)
	}
	article.ID = id
	return nil
}

// Get retrieves an article by ID. Returns (nil, nil) when not found.
func (repo *ArticleRepo) Get(ctx context.Context, id int64) (*entity.Article, error) {
	const query = `
SELECT id, owner_id, source_title, source_link, content, created_at
FROM articles
WHERE id = ?
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
	const query = `
SELECT id, owner_id, source_title, source_link, content, created_at
FROM articles
WHERE owner_id = ?
ORDER BY created_at DESC
LIMIT ? OFFSET ?`
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
	const query = `SELECT COUNT(*) FROM articles WHERE owner_id = ?`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query, ownerID).Scan(&count); err != nil {
		return 0, fmt.Errorf("CountByOwner: %w", err)
	}
	return count, nil
}
