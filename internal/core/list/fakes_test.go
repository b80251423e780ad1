// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package list_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/taibuivan/todo/internal/core/list"
	"github.com/taibuivan/todo/internal/platform/apperr"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memoryLists is an in-memory [list.Repository]. calls counts every
// repository access so tests can assert storage was never reached.
type memoryLists struct {
	mu    sync.Mutex
	rows  map[string]*list.List
	clock time.Time
	calls int
}

func newMemoryLists() *memoryLists {
	return &memoryLists{
		rows:  make(map[string]*list.List),
		clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memoryLists) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memoryLists) List(_ context.Context) ([]*list.List, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	lists := make([]*list.List, 0, len(m.rows))
	for _, row := range m.rows {
		copied := *row
		lists = append(lists, &copied)
	}
	sort.Slice(lists, func(i, j int) bool { return lists[i].CreatedAt.After(lists[j].CreatedAt) })
	return lists, nil
}

func (m *memoryLists) GetByID(_ context.Context, id string) (*list.List, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	row, ok := m.rows[id]
	if !ok {
		return nil, apperr.NotFound("List")
	}
	copied := *row
	return &copied, nil
}

func (m *memoryLists) Exists(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	_, ok := m.rows[id]
	return ok, nil
}

func (m *memoryLists) Create(_ context.Context, row *list.List) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	now := m.tick()
	row.CreatedAt, row.UpdatedAt = now, now
	copied := *row
	m.rows[row.ID] = &copied
	return nil
}

func (m *memoryLists) Update(_ context.Context, id string, changes list.Changes) (*list.List, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	row, ok := m.rows[id]
	if !ok {
		return nil, apperr.NotFound("List")
	}
	if changes.Name != nil {
		row.Name = *changes.Name
	}
	if changes.Description != nil {
		row.Description = changes.Description
	}
	if !changes.Empty() {
		row.UpdatedAt = m.tick()
	}
	copied := *row
	return &copied, nil
}

func (m *memoryLists) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if _, ok := m.rows[id]; !ok {
		return apperr.NotFound("List")
	}
	delete(m.rows, id)
	return nil
}

func (m *memoryLists) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
