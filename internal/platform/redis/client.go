// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis provides the Redis client used by the token blacklist.

When BLACKLIST_BACKEND=redis revoked tokens are stored with a TTL equal to
their remaining lifetime, so Redis expires them on its own. The traffic is one
EXISTS per authenticated request and one SET per logout, so the pool is small
and reads fail fast: a slow lookup is treated like a failed one.
*/
package redis

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/todo/internal/platform/constants"
)

const (
	dialTimeout  = 3 * time.Second
	readTimeout  = 500 * time.Millisecond
	writeTimeout = 500 * time.Millisecond
	pingTimeout  = 2 * time.Second
)

// Options tunes the client. Zero fields fall back to defaults.
type Options struct {
	PoolSize int
}

/*
ParseOptions builds client options from a redis:// URL and [Options].

Lookups are never retried; the authenticator logs and counts the failure
instead.
*/
func ParseOptions(redisURL string, opts Options) (*redis.Options, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}

	if opts.PoolSize > 0 {
		options.PoolSize = opts.PoolSize
	} else {
		options.PoolSize = 10
	}
	options.MinIdleConns = 1
	options.MaxIdleConns = options.PoolSize / 2

	options.ClientName = constants.AppName + "-blacklist"
	options.MaxRetries = -1
	options.DialTimeout = dialTimeout
	options.ReadTimeout = readTimeout
	options.WriteTimeout = writeTimeout

	return options, nil
}

// NewClient connects and pings the server.
func NewClient(context stdctx.Context, redisURL string, opts Options, logger *slog.Logger) (*redis.Client, error) {
	options, err := ParseOptions(redisURL, opts)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(options)

	if err := Ping(context, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis_client_connected",
		slog.String("addr", options.Addr),
		slog.Int("db", options.DB),
		slog.Int("pool_size", options.PoolSize),
	)

	return client, nil
}

// Ping verifies that the Redis client is healthy.
func Ping(context stdctx.Context, client redis.UniversalClient) error {
	pingCtx, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis: ping failed: %w", err)
	}

	return nil
}
