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

// UserRepo implements the UserRepository interface using PostgreSQL.
type UserRepo struct{ db *sql.DB }

// NewUserRepo creates a new PostgreSQL-backed user repository.
func NewUserRepo(db *sql.DB) repository.UserRepository {
	return &UserRepo{db: db}
}

// Create persists a new user and fills in the generated ID.
func (repo *UserRepo) Create(ctx context.Context, user *entity.User) error {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("user_create", time.Since(start)) }()

	const query = `
INSERT INTO users (username, email, password_hash, created_at)
VALUES ($1, $2, $3, $4)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

// GetByUsername retrieves a user by username. Returns (nil, nil) when not found.
func (repo *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("user_get_by_username", time.Since(start)) }()

	const query = `
SELECT id, username, email, password_hash, created_at
FROM users
WHERE username = $1
LIMIT 1`
	var user entity.User
	err := repo.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("GetByUsername: QueryRowContext: %w", err)
	}
	return &user, nil
}

// GetByID retrieves a user by ID. Returns (nil, nil) when not found.
func (repo *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("user_get_by_id", time.Since(start)) }()

	const query = `
SELECT id, username, email, password_hash, created_at
FROM users
WHERE id = $1
LIMIT 1`
	var user entity.User
	err := repo.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("GetByID: QueryRowContext: %w", err)
	}
	return &user, nil
}

// ExistsByUsername reports whether a user with the given username exists.
func (repo *UserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("user_exists_by_username", time.Since(start)) }()

	const query = `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`
	var exists bool
	if err := repo.db.QueryRowContext(ctx, query, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("ExistsByUsername: %w", err)
	}
	return exists, nil
}
