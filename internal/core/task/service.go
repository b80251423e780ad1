// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import (
	"context"
	"log/slog"

	"github.com/taibuivan/todo/internal/platform/apperr"
	"github.com/taibuivan/todo/pkg/uuid"
)

// Service implements the task use cases.
type Service struct {
	repository Repository
	lists      ListChecker
	logger     *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repository Repository, lists ListChecker, logger *slog.Logger) *Service {
	return &Service{repository: repository, lists: lists, logger: logger}
}

// requireList returns NOT_FOUND "List not found" when the list is missing.
func (service *Service) requireList(ctx context.Context, listID string) error {
	exists, err := service.lists.Exists(ctx, listID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("List")
	}
	return nil
}

// ListByList returns the tasks of an existing list.
func (service *Service) ListByList(ctx context.Context, listID string) ([]*Task, error) {
	if err := service.requireList(ctx, listID); err != nil {
		return nil, err
	}
	return service.repository.ListByList(ctx, listID)
}

// Get returns one task or NOT_FOUND.
func (service *Service) Get(ctx context.Context, id string) (*Task, error) {
	return service.repository.GetByID(ctx, id)
}

/*
Create adds a task to an existing list.

Returns:
  - *Task: The stored task with its timestamps
  - error: NOT_FOUND "List not found" when the list is missing
*/
func (service *Service) Create(ctx context.Context, listID string, input CreateInput) (*Task, error) {
	if err := service.requireList(ctx, listID); err != nil {
		return nil, err
	}

	categories := input.Categories
	if categories == nil {
		categories = []string{}
	}

	task := &Task{
		ID:          uuid.New(),
		ListID:      listID,
		Title:       input.Title,
		Description: input.Description,
		Completed:   input.Completed,
		DueDate:     input.DueDate,
		Priority:    input.Priority,
		Categories:  categories,
	}

	if err := service.repository.Create(ctx, task); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "task_created",
		slog.String("task_id", task.ID),
		slog.String("list_id", listID),
	)
	return task, nil
}

// Update applies a partial update and returns the stored task.
func (service *Service) Update(ctx context.Context, id string, changes Changes) (*Task, error) {
	return service.repository.Update(ctx, id, changes)
}

// Delete removes one task.
func (service *Service) Delete(ctx context.Context, id string) error {
	if err := service.repository.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "task_deleted", slog.String("task_id", id))
	return nil
}
