// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

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

const resourceName = "Task"

// PostgresRepository implements [Repository] with pgx and squirrel.
type PostgresRepository struct {
	pool    *pgxpool.Pool
	builder sq.StatementBuilderType
}

// NewPostgresRepository constructs a PostgreSQL backed task store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		pool:    pool,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func scanTask(row pgx.Row) (*Task, error) {
	task := &Task{}
	err := row.Scan(
		&task.ID, &task.ListID, &task.Title, &task.Description, &task.Completed,
		&task.DueDate, &task.Priority, &task.Categories, &task.CreatedAt, &task.UpdatedAt,
	)
	if task.Categories == nil {
		task.Categories = []string{}
	}
	return task, err
}

// ListByList returns the tasks of one list ordered by creation time, newest first.
func (repository *PostgresRepository) ListByList(ctx context.Context, listID string) ([]*Task, error) {
	sqlStr, args, err := repository.builder.
		Select(schema.Task.Columns()...).
		From(schema.Task.Table).
		Where(sq.Eq{schema.Task.ListID: listID}).
		OrderBy(schema.Task.CreatedAt + " DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("task_repo_build_select_failed: %w", err)
	}

	rows, err := repository.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	defer rows.Close()

	tasks := make([]*Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, dberr.Wrap(err, resourceName)
		}
		tasks = append(tasks, task)
	}

	return tasks, dberr.Wrap(rows.Err(), resourceName)
}

// GetByID returns one task or NOT_FOUND.
func (repository *PostgresRepository) GetByID(ctx context.Context, id string) (*Task, error) {
	sqlStr, args, err := repository.builder.
		Select(schema.Task.Columns()...).
		From(schema.Task.Table).
		Where(sq.Eq{schema.Task.ID: id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("task_repo_build_select_failed: %w", err)
	}

	task, err := scanTask(repository.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	return task, nil
}

// Create inserts the task. Timestamps come from the database defaults.
func (repository *PostgresRepository) Create(ctx context.Context, task *Task) error {
	if task.Categories == nil {
		task.Categories = []string{}
	}

	sqlStr, args, err := repository.builder.
		Insert(schema.Task.Table).
		Columns(
			schema.Task.ID, schema.Task.ListID, schema.Task.Title, schema.Task.Description,
			schema.Task.Completed, schema.Task.DueDate, schema.Task.Priority, schema.Task.Categories,
		).
		Values(
			task.ID, task.ListID, task.Title, task.Description,
			task.Completed, task.DueDate, task.Priority, task.Categories,
		).
		Suffix("RETURNING " + schema.Task.CreatedAt + ", " + schema.Task.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("task_repo_build_insert_failed: %w", err)
	}

	if err := repository.pool.QueryRow(ctx, sqlStr, args...).Scan(&task.CreatedAt, &task.UpdatedAt); err != nil {
		return dberr.Wrap(err, resourceName)
	}
	return nil
}

// Update sets only the supplied columns and bumps updated_at.
func (repository *PostgresRepository) Update(ctx context.Context, id string, changes Changes) (*Task, error) {
	if changes.Empty() {
		return repository.GetByID(ctx, id)
	}

	query := repository.builder.Update(schema.Task.Table)
	if changes.Title != nil {
		query = query.Set(schema.Task.Title, *changes.Title)
	}
	if changes.Description != nil {
		query = query.Set(schema.Task.Description, *changes.Description)
	}
	if changes.Completed != nil {
		query = query.Set(schema.Task.Completed, *changes.Completed)
	}
	if changes.DueDate.Set {
		query = query.Set(schema.Task.DueDate, changes.DueDate.Value)
	}
	if changes.Priority.Set {
		query = query.Set(schema.Task.Priority, changes.Priority.Value)
	}
	if changes.Categories != nil {
		query = query.Set(schema.Task.Categories, *changes.Categories)
	}

	sqlStr, args, err := query.
		Set(schema.Task.UpdatedAt, sq.Expr("NOW()")).
		Where(sq.Eq{schema.Task.ID: id}).
		Suffix("RETURNING " + strings.Join(schema.Task.Columns(), ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("task_repo_build_update_failed: %w", err)
	}

	task, err := scanTask(repository.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	return task, nil
}

// Delete removes one task.
func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	sqlStr, args, err := repository.builder.
		Delete(schema.Task.Table).
		Where(sq.Eq{schema.Task.ID: id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("task_repo_build_delete_failed: %w", err)
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
