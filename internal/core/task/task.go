// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package task manages the tasks that belong to a todo list.

Every task references exactly one list. Routes nested under a list check
that the list exists before touching tasks.
*/
package task

import "time"

// Priority levels accepted for a task.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task is a unit of work inside a list.
type Task struct {
	ID          string     `json:"id"`
	ListID      string     `json:"listId"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Completed   bool       `json:"completed"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    *string    `json:"priority"`
	Categories  []string   `json:"categories"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// CreateInput holds validated fields for a new task.
type CreateInput struct {
	Title       string
	Description *string
	Completed   bool
	DueDate     *time.Time
	Priority    *string
	Categories  []string
}

// Clearable is an update to a nullable column. When Set is false the column
// is left alone; a nil Value stores NULL.
type Clearable[T any] struct {
	Set   bool
	Value *T
}

// SetTo returns a Clearable that writes value, or NULL when value is nil.
func SetTo[T any](value *T) Clearable[T] {
	return Clearable[T]{Set: true, Value: value}
}

// Changes holds the fields of a partial update.
//
// Title, Description, Completed and Categories are written only when non-nil.
// DueDate and Priority may also be cleared.
type Changes struct {
	Title       *string
	Description *string
	Completed   *bool
	Categories  *[]string
	DueDate     Clearable[time.Time]
	Priority    Clearable[string]
}

// Empty reports whether the update touches nothing.
func (c Changes) Empty() bool {
	return c.Title == nil && c.Description == nil && c.Completed == nil &&
		c.Categories == nil && !c.DueDate.Set && !c.Priority.Set
}

// Field names used by validation and request decoding.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldCompleted   = "completed"
	FieldDueDate     = "dueDate"
	FieldPriority    = "priority"
	FieldCategories  = "categories"
)
