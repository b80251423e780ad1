// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package kvstore manages an embedded Badger database and its value-log GC.
//
// It backs the token blacklist when BLACKLIST_BACKEND=badger, for single-node
// deployments that should not depend on Redis.
package kvstore

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v3"
)

const (
	defaultGCInterval  = 10 * time.Minute
	defaultGCThreshold = 0.5
)

// Options configures [Open].
type Options struct {
	// Dir is the on-disk location. Ignored when InMemory is set.
	Dir string
	// InMemory keeps everything in RAM; used by tests.
	InMemory bool
	// GCInterval is the value-log GC period. Zero means 10 minutes.
	GCInterval time.Duration
}

// Store owns a Badger handle and its background GC loop.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	stopCh chan struct{}
	doneCh chan struct{}
}

// Open opens (or creates) the database and starts the GC loop for on-disk stores.
func Open(opts Options, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var badgerOpts badger.Options
	switch {
	case opts.InMemory:
		badgerOpts = badger.DefaultOptions("").WithInMemory(true)
	case opts.Dir != "":
		badgerOpts = badger.DefaultOptions(opts.Dir)
	default:
		return nil, errors.New("kvstore: dir is required")
	}
	badgerOpts.Logger = &badgerLogger{logger: logger}

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("kvstore: open db: %w", err)
	}

	store := &Store{
		db:     db,
		logger: logger,
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}

	// Value-log GC is not supported in memory mode
	if opts.InMemory {
		close(store.doneCh)
	} else {
		interval := opts.GCInterval
		if interval <= 0 {
			interval = defaultGCInterval
		}
		go store.gcLoop(interval)
	}

	logger.Info("badger_store_opened", slog.String("dir", opts.Dir), slog.Bool("in_memory", opts.InMemory))
	return store, nil
}

// DB returns the underlying Badger handle.
func (s *Store) DB() *badger.DB {
	return s.db
}

// GC runs value-log garbage collection until nothing is left to rewrite.
func (s *Store) GC() error {
	for {
		err := s.db.RunValueLogGC(defaultGCThreshold)
		if err == nil {
			continue
		}
		if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrRejected) {
			return nil
		}
		return fmt.Errorf("kvstore: gc: %w", err)
	}
}

// Close stops the GC loop and closes the database.
func (s *Store) Close() error {
	close(s.stopCh)
	<-s.doneCh

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("kvstore: close db: %w", err)
	}
	return nil
}

func (s *Store) gcLoop(interval time.Duration) {
	defer close(s.doneCh)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.GC(); err != nil {
				s.logger.Error("badger_gc_failed", slog.Any("error", err))
			}
		case <-s.stopCh:
			return
		}
	}
}

// badgerLogger adapts slog.Logger to Badger's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...any) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...any) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

// Infof is demoted to debug; badger is chatty at info.
func (l *badgerLogger) Infof(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
