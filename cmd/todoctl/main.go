// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command todoctl runs maintenance tasks against the configured token
// blacklist backend.
//
// It reads the same environment as the API server. With the badger backend
// the store directory is locked by a running server, so stop the server
// first or use the periodic sweeper instead.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/taibuivan/todo/internal/app"
	"github.com/taibuivan/todo/internal/platform/config"
	"github.com/taibuivan/todo/internal/platform/constants"
	"github.com/taibuivan/todo/internal/platform/sec"
	"github.com/taibuivan/todo/internal/users/auth"
)

func main() {
	cliApp := newApp(os.Stdout, openBlacklist)
	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// openBlacklist loads configuration and builds an [auth.Authenticator] over
// the configured backend. Logs go to stderr so stdout stays scriptable.
func openBlacklist(ctx context.Context) (blacklistAdmin, func() error, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}

	log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})).With(slog.String("app", "todoctl"))

	infra, err := app.OpenBlacklist(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	tokens, err := sec.NewTokenService(cfg.JWTSecret, cfg.TokenTTL(), constants.AuthIssuer)
	if err != nil {
		_ = infra.Close()
		return nil, nil, err
	}

	return auth.NewAuthenticator(tokens, infra.Blacklist, log), infra.Close, nil
}
