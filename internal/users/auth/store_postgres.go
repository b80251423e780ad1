// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/todo/internal/platform/apperr"
	"github.com/taibuivan/todo/internal/platform/database/schema"
	"github.com/taibuivan/todo/internal/platform/dberr"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

var userSelect = fmt.Sprintf("SELECT %s FROM %s",
	strings.Join(schema.User.Columns(), ", "),
	schema.User.Table,
)

/*
Create persists a new user record into the users table.

Description: Timestamps are assigned by the database and written back into
the entity.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: apperr.Conflict on duplicate username/email, or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s`,
		schema.User.Table,
		schema.User.ID, schema.User.Username, schema.User.Email, schema.User.PasswordHash,
		schema.User.CreatedAt, schema.User.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			conflict := apperr.Conflict("Username or email already exists")
			conflict.Cause = err
			return conflict
		}
		return fmt.Errorf("postgres_user_repo_create_failed: %w", err)
	}

	return nil
}

// FindByID retrieves a user record by primary key.
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	return repository.findOne(context, schema.User.ID, id)
}

// FindByUsername retrieves a user record by their unique username.
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	return repository.findOne(context, schema.User.Username, username)
}

func (repository *PostgresUserRepository) findOne(context context.Context, column, value string) (*User, error) {
	query := userSelect + " WHERE " + column + " = $1"

	user := &User{}
	err := repository.pool.QueryRow(context, query, value).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}

	return user, nil
}

// # Blacklist Repository

// PostgresBlacklistRepository stores revoked tokens in the token_blacklist table.
type PostgresBlacklistRepository struct {
	pool    *pgxpool.Pool
	builder sq.StatementBuilderType
}

// NewPostgresBlacklistRepository creates the table-backed blacklist store.
func NewPostgresBlacklistRepository(pool *pgxpool.Pool) *PostgresBlacklistRepository {
	return &PostgresBlacklistRepository{
		pool:    pool,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Add inserts the entry. The primary key on token makes duplicates a no-op.
func (repository *PostgresBlacklistRepository) Add(context context.Context, entry *BlacklistEntry) error {
	sqlStr, args, err := repository.builder.
		Insert(schema.TokenBlacklist.Table).
		Columns(schema.TokenBlacklist.Columns()...).
		Values(entry.Token, entry.UserID, entry.BlacklistedAt, entry.ExpiresAt).
		Suffix("ON CONFLICT (" + schema.TokenBlacklist.Token + ") DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("postgres_blacklist_build_insert_failed: %w", err)
	}

	if _, err := repository.pool.Exec(context, sqlStr, args...); err != nil {
		return fmt.Errorf("postgres_blacklist_add_failed: %w", err)
	}
	return nil
}

// Contains reports whether the token has a blacklist row.
func (repository *PostgresBlacklistRepository) Contains(context context.Context, token string) (bool, error) {
	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)",
		schema.TokenBlacklist.Table, schema.TokenBlacklist.Token)

	var exists bool
	if err := repository.pool.QueryRow(context, query, token).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_blacklist_contains_failed: %w", err)
	}
	return exists, nil
}

// DeleteExpired removes rows whose expires_at is before now.
func (repository *PostgresBlacklistRepository) DeleteExpired(context context.Context, now time.Time) (int64, error) {
	sqlStr, args, err := repository.builder.
		Delete(schema.TokenBlacklist.Table).
		Where(sq.Lt{schema.TokenBlacklist.ExpiresAt: now}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("postgres_blacklist_build_delete_failed: %w", err)
	}

	tag, err := repository.pool.Exec(context, sqlStr, args...)
	if err != nil {
		return 0, fmt.Errorf("postgres_blacklist_delete_expired_failed: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Count returns the number of rows in the blacklist.
func (repository *PostgresBlacklistRepository) Count(context context.Context) (int64, error) {
	var total int64
	query := "SELECT COUNT(*) FROM " + schema.TokenBlacklist.Table
	if err := repository.pool.QueryRow(context, query).Scan(&total); err != nil {
		return 0, fmt.Errorf("postgres_blacklist_count_failed: %w", err)
	}
	return total, nil
}
