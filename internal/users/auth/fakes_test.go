// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/taibuivan/todo/internal/platform/apperr"
	"github.com/taibuivan/todo/internal/users/auth"
)

// memoryUsers is an in-memory UserRepository.
type memoryUsers struct {
	mu    sync.Mutex
	byID  map[string]*auth.User
	clock func() time.Time
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byID: map[string]*auth.User{}, clock: time.Now}
}

func (repo *memoryUsers) Create(_ context.Context, user *auth.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, existing := range repo.byID {
		if existing.Username == user.Username || existing.Email == user.Email {
			return apperr.Conflict("User already exists")
		}
	}

	user.CreatedAt = repo.clock().UTC()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	repo.byID[user.ID] = &stored
	return nil
}

func (repo *memoryUsers) FindByID(_ context.Context, id string) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	user, ok := repo.byID[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	copied := *user
	return &copied, nil
}

func (repo *memoryUsers) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, user := range repo.byID {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

// memoryBlacklist is an in-memory BlacklistRepository with injectable failures.
type memoryBlacklist struct {
	mu         sync.Mutex
	entries    map[string]auth.BlacklistEntry
	addErr     error
	lookupErr  error
	addedCalls int
}

func newMemoryBlacklist() *memoryBlacklist {
	return &memoryBlacklist{entries: map[string]auth.BlacklistEntry{}}
}

func (repo *memoryBlacklist) Add(_ context.Context, entry *auth.BlacklistEntry) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	repo.addedCalls++
	if repo.addErr != nil {
		return repo.addErr
	}
	if _, exists := repo.entries[entry.Token]; !exists {
		repo.entries[entry.Token] = *entry
	}
	return nil
}

func (repo *memoryBlacklist) Contains(_ context.Context, token string) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.lookupErr != nil {
		return false, repo.lookupErr
	}
	_, ok := repo.entries[token]
	return ok, nil
}

func (repo *memoryBlacklist) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	var removed int64
	for token, entry := range repo.entries {
		if entry.Expired(now) {
			delete(repo.entries, token)
			removed++
		}
	}
	return removed, nil
}

func (repo *memoryBlacklist) Count(context.Context) (int64, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return int64(len(repo.entries)), nil
}

// countingObserver records blacklist events.
type countingObserver struct {
	mu           sync.Mutex
	revoked      int
	swept        int64
	lookupFailed int
}

func (o *countingObserver) TokenRevoked() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.revoked++
}

func (o *countingObserver) EntriesSwept(n int64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.swept += n
}

func (o *countingObserver) LookupFailed() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lookupFailed++
}

var errStoreDown = errors.New("store unreachable")

// fakeClock is a settable time source shared by the token service and the authenticator.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func timeNow() time.Time {
	return time.Now().Truncate(time.Second)
}
