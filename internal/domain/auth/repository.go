package auth

import (
	"context"

	"depo/internal/core/id"
)

// UserRepository defines user storage operations.
type UserRepository interface {
	// Create creates a new user.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves user by ID.
	GetByID(ctx context.Context, userID id.ID) (*User, error)

	// GetByUsername retrieves user by login name.
	GetByUsername(ctx context.Context, username string) (*User, error)

	// Update updates login bookkeeping (attempts, lock, last login).
	Update(ctx context.Context, user *User) error

	// Exists checks if username is taken.
	Exists(ctx context.Context, username string) (bool, error)
}
