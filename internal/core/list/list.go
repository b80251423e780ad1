// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package list manages todo lists.

A list is a named container for tasks. Deleting a list deletes its tasks
through the foreign key cascade.
*/
package list

import "time"

// List is a named collection of tasks.
type List struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateInput holds validated fields for a new list.
type CreateInput struct {
	Name        string
	Description *string
}

// Changes holds the fields of a partial update. Nil fields are left alone.
type Changes struct {
	Name        *string
	Description *string
}

// Empty reports whether the update touches nothing.
func (c Changes) Empty() bool {
	return c.Name == nil && c.Description == nil
}

// Field names used by validation and request decoding.
const (
	FieldName        = "name"
	FieldDescription = "description"
)
