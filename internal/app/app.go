// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package app opens the shared infrastructure used by both binaries.

The API server needs the whole set: the PostgreSQL pool (with migrations
applied), Redis when configured, and the blacklist store selected by
BLACKLIST_BACKEND. The maintenance CLI only needs the blacklist store.
*/
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/todo/internal/platform/config"
	"github.com/taibuivan/todo/internal/platform/constants"
	"github.com/taibuivan/todo/internal/platform/kvstore"
	"github.com/taibuivan/todo/internal/platform/migration"
	pgstore "github.com/taibuivan/todo/internal/platform/postgres"
	redisstore "github.com/taibuivan/todo/internal/platform/redis"
	"github.com/taibuivan/todo/internal/users/auth"
)

const badgerGCInterval = 10 * time.Minute

// Infrastructure holds the opened connections. Fields for backends that were
// not needed are nil.
type Infrastructure struct {
	Pool      *pgxpool.Pool
	Redis     *redis.Client
	KV        *kvstore.Store
	Blacklist auth.BlacklistRepository

	logger  *slog.Logger
	closers []func() error
}

// Open connects everything the API server needs and applies migrations.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Infrastructure, error) {
	infra := &Infrastructure{logger: logger}

	if err := infra.openPostgres(ctx, cfg, true); err != nil {
		return nil, infra.fail(err)
	}

	if cfg.RedisURL != "" {
		if err := infra.openRedis(ctx, cfg); err != nil {
			return nil, infra.fail(err)
		}
	}

	if err := infra.openBlacklist(ctx, cfg); err != nil {
		return nil, infra.fail(err)
	}

	return infra, nil
}

// OpenBlacklist connects only the configured blacklist backend.
func OpenBlacklist(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Infrastructure, error) {
	infra := &Infrastructure{logger: logger}

	if err := infra.openBlacklist(ctx, cfg); err != nil {
		return nil, infra.fail(err)
	}

	return infra, nil
}

func (infra *Infrastructure) openPostgres(ctx context.Context, cfg *config.Config, migrate bool) error {
	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, pgstore.Options{
		MaxConns:         cfg.DBMaxConns,
		MinConns:         cfg.DBMinConns,
		StatementTimeout: constants.DefaultWriteTimeout,
	}, infra.logger)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	infra.Pool = pool
	infra.closers = append(infra.closers, func() error {
		pool.Close()
		return nil
	})

	if migrate {
		if err := migration.RunUp(cfg.DatabaseURL, infra.logger); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	}
	return nil
}

func (infra *Infrastructure) openRedis(ctx context.Context, cfg *config.Config) error {
	client, err := redisstore.NewClient(ctx, cfg.RedisURL, redisstore.Options{PoolSize: cfg.RedisPoolSize}, infra.logger)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	infra.Redis = client
	infra.closers = append(infra.closers, client.Close)
	return nil
}

// openBlacklist builds the repository for cfg.BlacklistBackend, opening the
// backing connection when an earlier step has not already done so.
func (infra *Infrastructure) openBlacklist(ctx context.Context, cfg *config.Config) error {
	switch cfg.BlacklistBackend {
	case config.BackendRedis:
		if infra.Redis == nil {
			if err := infra.openRedis(ctx, cfg); err != nil {
				return err
			}
		}
		infra.Blacklist = auth.NewRedisBlacklistRepository(infra.Redis)

	case config.BackendBadger:
		store, err := kvstore.Open(kvstore.Options{Dir: cfg.BadgerDir, GCInterval: badgerGCInterval}, infra.logger)
		if err != nil {
			return fmt.Errorf("open badger: %w", err)
		}
		infra.KV = store
		infra.closers = append(infra.closers, store.Close)
		infra.Blacklist = auth.NewBadgerBlacklistRepository(store.DB())

	default:
		if infra.Pool == nil {
			if err := infra.openPostgres(ctx, cfg, false); err != nil {
				return err
			}
		}
		infra.Blacklist = auth.NewPostgresBlacklistRepository(infra.Pool)
	}

	infra.logger.Info("blacklist_backend_selected", slog.String("backend", cfg.BlacklistBackend))
	return nil
}

// PingPostgres reports whether the pool can reach the database.
func (infra *Infrastructure) PingPostgres(ctx context.Context) error {
	if infra.Pool == nil {
		return errors.New("postgres not configured")
	}
	return pgstore.Ping(ctx, infra.Pool)
}

// PingRedis reports whether the Redis server answers.
func (infra *Infrastructure) PingRedis(ctx context.Context) error {
	if infra.Redis == nil {
		return errors.New("redis not configured")
	}
	return redisstore.Ping(ctx, infra.Redis)
}

// Close releases every opened connection in reverse order.
func (infra *Infrastructure) Close() error {
	var errs []error
	for i := len(infra.closers) - 1; i >= 0; i-- {
		if err := infra.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	infra.closers = nil
	return errors.Join(errs...)
}

// fail closes whatever was opened before err and returns err.
func (infra *Infrastructure) fail(err error) error {
	if closeErr := infra.Close(); closeErr != nil {
		infra.logger.Error("infrastructure_close_failed", slog.Any("error", closeErr))
	}
	return err
}
