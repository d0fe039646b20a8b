// Package auth_repo provides PostgreSQL implementations for auth repositories.
package auth_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"

	"depo/internal/core/apperror"
	"depo/internal/core/id"
	"depo/internal/domain/auth"
	"depo/internal/infrastructure/storage/postgres"
)

const userColumns = `id, username, password_hash, is_active, is_admin,
	last_login_at, failed_login_attempts, locked_until, created_at, version`

var _ auth.UserRepository = (*UserRepo)(nil)

// UserRepo implements auth.UserRepository over sys_users.
type UserRepo struct {
	txm *postgres.TxManager
}

// NewUserRepo creates a new user repository.
func NewUserRepo(txm *postgres.TxManager) *UserRepo {
	return &UserRepo{txm: txm}
}

// Create creates a new user.
func (r *UserRepo) Create(ctx context.Context, user *auth.User) error {
	const query = `
		INSERT INTO sys_users (
			id, username, password_hash, is_active, is_admin,
			failed_login_attempts, created_at, version
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.txm.GetQuerier(ctx).Exec(ctx, query,
		user.ID, user.Username, user.PasswordHash, user.IsActive, user.IsAdmin,
		user.FailedLoginAttempts, user.CreatedAt, user.Version,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewDuplicate("user", "username", user.Username)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID retrieves user by ID.
func (r *UserRepo) GetByID(ctx context.Context, userID id.ID) (*auth.User, error) {
	return r.getOne(ctx, "id = $1", userID, userID.String())
}

// GetByUsername retrieves user by login name.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*auth.User, error) {
	return r.getOne(ctx, "username = $1", username, username)
}

func (r *UserRepo) getOne(ctx context.Context, where string, arg any, key string) (*auth.User, error) {
	query := "SELECT " + userColumns + " FROM sys_users WHERE " + where

	var user auth.User
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &user, query, arg); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("user", key)
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &user, nil
}

// Update stores login bookkeeping with optimistic locking.
func (r *UserRepo) Update(ctx context.Context, user *auth.User) error {
	const query = `
		UPDATE sys_users SET
			is_active = $2,
			is_admin = $3,
			last_login_at = $4,
			failed_login_attempts = $5,
			locked_until = $6,
			version = version + 1
		WHERE id = $1 AND version = $7`

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, query,
		user.ID, user.IsActive, user.IsAdmin, user.LastLoginAt,
		user.FailedLoginAttempts, user.LockedUntil, user.Version,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("user", user.ID)
	}

	user.Version++
	return nil
}

// Exists checks if username is taken.
func (r *UserRepo) Exists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.txm.GetQuerier(ctx).
		QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM sys_users WHERE username = $1)`, username).
		Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check exists: %w", err)
	}
	return exists, nil
}
