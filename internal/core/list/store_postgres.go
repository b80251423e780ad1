// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package list

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/todo/internal/platform/apperr"
	"github.com/taibuivan/todo/internal/platform/database/schema"
	"github.com/taibuivan/todo/internal/platform/dberr"
)

const resourceName = "List"

// PostgresRepository implements [Repository] with pgx and squirrel.
type PostgresRepository struct {
	pool    *pgxpool.Pool
	builder sq.StatementBuilderType
}

// NewPostgresRepository constructs a PostgreSQL backed list store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		pool:    pool,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func scanList(row pgx.Row) (*List, error) {
	list := &List{}
	err := row.Scan(&list.ID, &list.Name, &list.Description, &list.CreatedAt, &list.UpdatedAt)
	return list, err
}

// List returns every list ordered by creation time, newest first.
func (repository *PostgresRepository) List(ctx context.Context) ([]*List, error) {
	sqlStr, args, err := repository.builder.
		Select(schema.List.Columns()...).
		From(schema.List.Table).
		OrderBy(schema.List.CreatedAt + " DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("list_repo_build_select_failed: %w", err)
	}

	rows, err := repository.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	defer rows.Close()

	lists := make([]*List, 0)
	for rows.Next() {
		list, err := scanList(rows)
		if err != nil {
			return nil, dberr.Wrap(err, resourceName)
		}
		lists = append(lists, list)
	}

	return lists, dberr.Wrap(rows.Err(), resourceName)
}

// GetByID returns one list or NOT_FOUND.
func (repository *PostgresRepository) GetByID(ctx context.Context, id string) (*List, error) {
	sqlStr, args, err := repository.builder.
		Select(schema.List.Columns()...).
		From(schema.List.Table).
		Where(sq.Eq{schema.List.ID: id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("list_repo_build_select_failed: %w", err)
	}

	list, err := scanList(repository.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	return list, nil
}

// Exists reports whether the list row is present.
func (repository *PostgresRepository) Exists(ctx context.Context, id string) (bool, error) {
	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)", schema.List.Table, schema.List.ID)

	var exists bool
	if err := repository.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, resourceName)
	}
	return exists, nil
}

// Create inserts the list. Timestamps come from the database defaults.
func (repository *PostgresRepository) Create(ctx context.Context, list *List) error {
	sqlStr, args, err := repository.builder.
		Insert(schema.List.Table).
		Columns(schema.List.ID, schema.List.Name, schema.List.Description).
		Values(list.ID, list.Name, list.Description).
		Suffix("RETURNING " + schema.List.CreatedAt + ", " + schema.List.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("list_repo_build_insert_failed: %w", err)
	}

	if err := repository.pool.QueryRow(ctx, sqlStr, args...).Scan(&list.CreatedAt, &list.UpdatedAt); err != nil {
		return dberr.Wrap(err, resourceName)
	}
	return nil
}

// Update sets only the supplied columns and bumps updated_at.
func (repository *PostgresRepository) Update(ctx context.Context, id string, changes Changes) (*List, error) {
	if changes.Empty() {
		return repository.GetByID(ctx, id)
	}

	query := repository.builder.Update(schema.List.Table)
	if changes.Name != nil {
		query = query.Set(schema.List.Name, *changes.Name)
	}
	if changes.Description != nil {
		query = query.Set(schema.List.Description, *changes.Description)
	}

	sqlStr, args, err := query.
		Set(schema.List.UpdatedAt, sq.Expr("NOW()")).
		Where(sq.Eq{schema.List.ID: id}).
		Suffix("RETURNING " + strings.Join(schema.List.Columns(), ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("list_repo_build_update_failed: %w", err)
	}

	list, err := scanList(repository.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	return list, nil
}

// Delete removes the list; its tasks go with it.
func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	sqlStr, args, err := repository.builder.
		Delete(schema.List.Table).
		Where(sq.Eq{schema.List.ID: id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("list_repo_build_delete_failed: %w", err)
	}

	tag, err := repository.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		return dberr.Wrap(err, resourceName)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceName)
	}
	return nil
}

