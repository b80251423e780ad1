// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v3"

	"github.com/taibuivan/todo/internal/platform/constants"
)

// BadgerBlacklistRepository keeps revoked tokens in an embedded Badger store.
//
// Entries are written with a TTL so Badger hides them once the token expires;
// DeleteExpired additionally removes any entry whose recorded expiry is past.
type BadgerBlacklistRepository struct {
	db  *badger.DB
	now func() time.Time
}

// NewBadgerBlacklistRepository wraps an open Badger handle.
func NewBadgerBlacklistRepository(db *badger.DB) *BadgerBlacklistRepository {
	return &BadgerBlacklistRepository{db: db, now: time.Now}
}

// Add writes the entry unless the token is already present.
func (repository *BadgerBlacklistRepository) Add(_ context.Context, entry *BlacklistEntry) error {
	value, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("badger_blacklist_encode_failed: %w", err)
	}

	key := []byte(blacklistKey(entry.Token))
	err = repository.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err == nil {
			return nil
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		record := badger.NewEntry(key, value)
		if ttl := entry.ExpiresAt.Sub(repository.now()); ttl > 0 {
			record = record.WithTTL(ttl)
		}
		return txn.SetEntry(record)
	})

	// A concurrent Add of the same token won the race; the entry exists.
	if errors.Is(err, badger.ErrConflict) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("badger_blacklist_add_failed: %w", err)
	}
	return nil
}

// Contains reports whether a live entry exists for the token.
func (repository *BadgerBlacklistRepository) Contains(_ context.Context, token string) (bool, error) {
	err := repository.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(blacklistKey(token)))
		return err
	})

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, badger.ErrKeyNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("badger_blacklist_contains_failed: %w", err)
	}
}

// DeleteExpired scans the blacklist prefix and deletes entries expired at now.
func (repository *BadgerBlacklistRepository) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var expired [][]byte

	err := repository.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(constants.RedisPrefixBlacklist)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()

			var entry BlacklistEntry
			if err := item.Value(func(value []byte) error {
				return json.Unmarshal(value, &entry)
			}); err != nil {
				return err
			}

			if entry.Expired(now) {
				expired = append(expired, item.KeyCopy(nil))
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("badger_blacklist_scan_failed: %w", err)
	}

	// Deletes are batched so large sweeps do not exceed transaction limits
	batch := repository.db.NewWriteBatch()
	defer batch.Cancel()

	for _, key := range expired {
		if err := batch.Delete(key); err != nil {
			return 0, fmt.Errorf("badger_blacklist_delete_failed: %w", err)
		}
	}
	if err := batch.Flush(); err != nil {
		return 0, fmt.Errorf("badger_blacklist_flush_failed: %w", err)
	}

	return int64(len(expired)), nil
}

// Count returns the number of live entries.
func (repository *BadgerBlacklistRepository) Count(context.Context) (int64, error) {
	var total int64

	err := repository.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false // Only need keys
		opts.Prefix = []byte(constants.RedisPrefixBlacklist)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			total++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("badger_blacklist_count_failed: %w", err)
	}

	return total, nil
}
