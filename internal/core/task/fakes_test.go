// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/taibuivan/todo/internal/core/task"
	"github.com/taibuivan/todo/internal/platform/apperr"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// knownLists is a [task.ListChecker] backed by a set of IDs.
type knownLists map[string]bool

func (lists knownLists) Exists(_ context.Context, id string) (bool, error) {
	return lists[id], nil
}

// memoryTasks is an in-memory [task.Repository].
type memoryTasks struct {
	mu    sync.Mutex
	rows  map[string]*task.Task
	clock time.Time
}

func newMemoryTasks() *memoryTasks {
	return &memoryTasks{
		rows:  make(map[string]*task.Task),
		clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memoryTasks) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func clone(row *task.Task) *task.Task {
	copied := *row
	copied.Categories = append([]string{}, row.Categories...)
	return &copied
}

func (m *memoryTasks) ListByList(_ context.Context, listID string) ([]*task.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tasks := make([]*task.Task, 0)
	for _, row := range m.rows {
		if row.ListID == listID {
			tasks = append(tasks, clone(row))
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].CreatedAt.After(tasks[j].CreatedAt) })
	return tasks, nil
}

func (m *memoryTasks) GetByID(_ context.Context, id string) (*task.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, ok := m.rows[id]
	if !ok {
		return nil, apperr.NotFound("Task")
	}
	return clone(row), nil
}

func (m *memoryTasks) Create(_ context.Context, row *task.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.tick()
	row.CreatedAt, row.UpdatedAt = now, now
	m.rows[row.ID] = clone(row)
	return nil
}

func (m *memoryTasks) Update(_ context.Context, id string, changes task.Changes) (*task.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, ok := m.rows[id]
	if !ok {
		return nil, apperr.NotFound("Task")
	}
	if changes.Title != nil {
		row.Title = *changes.Title
	}
	if changes.Description != nil {
		row.Description = changes.Description
	}
	if changes.Completed != nil {
		row.Completed = *changes.Completed
	}
	if changes.Categories != nil {
		row.Categories = *changes.Categories
	}
	if changes.DueDate.Set {
		row.DueDate = changes.DueDate.Value
	}
	if changes.Priority.Set {
		row.Priority = changes.Priority.Value
	}
	if !changes.Empty() {
		row.UpdatedAt = m.tick()
	}
	return clone(row), nil
}

func (m *memoryTasks) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rows[id]; !ok {
		return apperr.NotFound("Task")
	}
	delete(m.rows, id)
	return nil
}
