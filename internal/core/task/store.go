// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import "context"

// Repository defines the data access contract for tasks.
type Repository interface {
	// ListByList returns the tasks of one list, newest first.
	ListByList(ctx context.Context, listID string) ([]*Task, error)

	GetByID(ctx context.Context, id string) (*Task, error)

	// Create inserts the task and fills in its timestamps.
	Create(ctx context.Context, task *Task) error

	// Update applies the changes and returns the stored row.
	Update(ctx context.Context, id string, changes Changes) (*Task, error)

	Delete(ctx context.Context, id string) error
}

// ListChecker reports whether a list exists.
type ListChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}
