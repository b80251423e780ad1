// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package list

import "context"

// Repository defines the data access contract for lists.
//
// Missing rows are reported as apperr NOT_FOUND errors.
type Repository interface {
	// List returns every list, newest first.
	List(ctx context.Context) ([]*List, error)

	GetByID(ctx context.Context, id string) (*List, error)

	// Exists reports whether a list with the ID is stored.
	Exists(ctx context.Context, id string) (bool, error)

	// Create inserts the list and fills in its timestamps.
	Create(ctx context.Context, list *List) error

	// Update applies the changes and returns the stored row.
	Update(ctx context.Context, id string, changes Changes) (*List, error)

	Delete(ctx context.Context, id string) error
}
