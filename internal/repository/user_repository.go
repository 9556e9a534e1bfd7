package repository

import (
	"context"

	"tubescribe/internal/domain/entity"
)

// UserRepository persists user accounts.
type UserRepository interface {
	// Create persists a new user and sets its ID on success.
	Create(ctx context.Context, user *entity.User) error
	// GetByUsername retrieves a user by username.
	// Returns (nil, nil) if no such user exists.
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// GetByID retrieves a user by ID.
	// Returns (nil, nil) if no such user exists.
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	// ExistsByUsername reports whether a user with the given username exists.
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}
