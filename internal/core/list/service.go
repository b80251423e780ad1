// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package list

import (
	"context"
	"log/slog"

	"github.com/taibuivan/todo/pkg/uuid"
)

// Service implements the list use cases.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

// ListAll returns every list, newest first.
func (service *Service) ListAll(ctx context.Context) ([]*List, error) {
	return service.repository.List(ctx)
}

// Get returns one list or NOT_FOUND.
func (service *Service) Get(ctx context.Context, id string) (*List, error) {
	return service.repository.GetByID(ctx, id)
}

// Exists reports whether the list is stored. Task creation uses it.
func (service *Service) Exists(ctx context.Context, id string) (bool, error) {
	return service.repository.Exists(ctx, id)
}

// Create assigns an ID and persists a new list.
func (service *Service) Create(ctx context.Context, input CreateInput) (*List, error) {
	list := &List{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
	}

	if err := service.repository.Create(ctx, list); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "list_created", slog.String("list_id", list.ID))
	return list, nil
}

// Update applies a partial update and returns the stored list.
func (service *Service) Update(ctx context.Context, id string, changes Changes) (*List, error) {
	return service.repository.Update(ctx, id, changes)
}

// Delete removes the list and, through the cascade, its tasks.
func (service *Service) Delete(ctx context.Context, id string) error {
	if err := service.repository.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "list_deleted", slog.String("list_id", id))
	return nil
}
