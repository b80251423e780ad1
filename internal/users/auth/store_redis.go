// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/todo/internal/platform/constants"
)

// countScanBatch is the SCAN page size used by Count.
const countScanBatch = 500

// RedisBlacklistRepository implements BlacklistRepository using Redis keys
// that expire together with the token they describe.
type RedisBlacklistRepository struct {
	client redis.UniversalClient
	now    func() time.Time
}

// NewRedisBlacklistRepository creates a new Redis-backed blacklist.
func NewRedisBlacklistRepository(client redis.UniversalClient) *RedisBlacklistRepository {
	return &RedisBlacklistRepository{client: client, now: time.Now}
}

func blacklistKey(token string) string {
	return constants.RedisPrefixBlacklist + token
}

/*
Add stores the token with a TTL equal to its remaining lifetime.

Description: SETNX keeps the first entry when the same token is revoked
twice. Tokens that are already past their expiry are not stored, since they
can never verify again.

Parameters:
  - context: context.Context
  - entry: *BlacklistEntry

Returns:
  - error: Execution errors
*/
func (repository *RedisBlacklistRepository) Add(context context.Context, entry *BlacklistEntry) error {
	ttl := entry.ExpiresAt.Sub(repository.now())
	if ttl <= 0 {
		return nil
	}

	if err := repository.client.SetNX(context, blacklistKey(entry.Token), entry.UserID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_blacklist_add_failed: %w", err)
	}
	return nil
}

// Contains reports whether the blacklist key exists.
func (repository *RedisBlacklistRepository) Contains(context context.Context, token string) (bool, error) {
	count, err := repository.client.Exists(context, blacklistKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("redis_blacklist_contains_failed: %w", err)
	}
	return count > 0, nil
}

// DeleteExpired is a no-op: Redis evicts the keys when their TTL elapses.
func (repository *RedisBlacklistRepository) DeleteExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}

// Count walks the blacklist keyspace with SCAN.
func (repository *RedisBlacklistRepository) Count(context context.Context) (int64, error) {
	var total int64

	iterator := repository.client.Scan(context, 0, constants.RedisPrefixBlacklist+"*", countScanBatch).Iterator()
	for iterator.Next(context) {
		total++
	}
	if err := iterator.Err(); err != nil {
		return 0, fmt.Errorf("redis_blacklist_count_failed: %w", err)
	}

	return total, nil
}
