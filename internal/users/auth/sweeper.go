// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper periodically removes expired blacklist entries.
type Sweeper struct {
	authenticator *Authenticator
	interval      time.Duration
	logger        *slog.Logger
}

// NewSweeper creates a sweeper running every interval.
func NewSweeper(authenticator *Authenticator, interval time.Duration, logger *slog.Logger) *Sweeper {
	return &Sweeper{authenticator: authenticator, interval: interval, logger: logger}
}

// Run sweeps once immediately, then on every tick until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("blacklist_sweeper_started", slog.Duration("interval", s.interval))

	for {
		s.sweepOnce(ctx)

		select {
		case <-ctx.Done():
			s.logger.Info("blacklist_sweeper_stopped")
			return
		case <-ticker.C:
		}
	}
}

func (s *Sweeper) sweepOnce(ctx context.Context) {
	removed, err := s.authenticator.Sweep(ctx)
	if err != nil {
		s.logger.Error("blacklist_sweep_failed", slog.Any("error", err))
		return
	}

	if removed > 0 {
		s.logger.Info("blacklist_sweep_completed", slog.Int64("removed", removed))
	}
}
