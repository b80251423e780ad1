// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the todo HTTP API server.
//
// # Startup Sequence
//
//  1. Load configuration from the environment (and .env when present).
//  2. Initialize the structured logger at the configured level.
//  3. Open PostgreSQL, run migrations, and open the blacklist backend.
//  4. Wire repositories, services and handlers.
//  5. Start the blacklist sweeper and the HTTP server.
//  6. On SIGINT/SIGTERM, drain requests and stop the sweeper.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/todo/internal/api"
	"github.com/taibuivan/todo/internal/app"
	"github.com/taibuivan/todo/internal/core/list"
	"github.com/taibuivan/todo/internal/core/task"
	"github.com/taibuivan/todo/internal/platform/config"
	"github.com/taibuivan/todo/internal/platform/constants"
	"github.com/taibuivan/todo/internal/platform/metrics"
	"github.com/taibuivan/todo/internal/platform/router"
	"github.com/taibuivan/todo/internal/platform/sec"
	"github.com/taibuivan/todo/internal/users/auth"
)

func main() {
	// ── 1. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		bootLog := slog.New(slog.NewJSONHandler(os.Stdout, nil))
		must(bootLog, err, "load configuration")
	}

	// ── 2. Logger ─────────────────────────────────────────────────────────
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})).With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("blacklist_backend", cfg.BlacklistBackend),
		slog.Bool("debug", cfg.Debug),
	)

	// Startup gets a deadline so misconfiguration fails fast.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Infrastructure ─────────────────────────────────────────────────
	infra, err := app.Open(startupCtx, cfg, log)
	must(log, err, "open infrastructure")
	defer func() {
		log.Info("closing_infrastructure")
		if cerr := infra.Close(); cerr != nil {
			log.Error("infrastructure_close_error", slog.Any("error", cerr))
		}
	}()

	collectors := metrics.New()

	// ── 4. Auth ───────────────────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.JWTSecret, cfg.TokenTTL(), constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	authenticator := auth.NewAuthenticator(tokens, infra.Blacklist, log, auth.WithObserver(collectors))
	authService := auth.NewService(auth.NewUserRepository(infra.Pool), authenticator, sec.PasswordHasher{}, log)

	// ── 5. Domain Wiring ──────────────────────────────────────────────────
	listService := list.NewService(list.NewPostgresRepository(infra.Pool), log)
	taskService := task.NewService(task.NewPostgresRepository(infra.Pool), listService, log)

	routes := api.NewRouteTable(cfg.APIPrefix(),
		auth.NewHandler(authService, authenticator),
		list.NewHandler(listService),
		task.NewHandler(taskService),
	)
	dispatcher := router.NewDispatcher(routes, log,
		router.WithDebug(cfg.Debug),
		router.WithObserver(collectors),
	)

	// ── 6. Health ─────────────────────────────────────────────────────────
	deps := api.HealthDependencies{CheckDatabase: infra.PingPostgres}
	if infra.Redis != nil {
		deps.CheckCache = infra.PingRedis
	}
	liveness, readiness := api.NewHealthHandlers(deps, log)

	server := api.NewServer(cfg, log, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Metrics:   collectors.Handler(),
		API:       dispatcher,
	})

	// ── 7. Background Sweeper ─────────────────────────────────────────────
	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	sweeperDone := make(chan struct{})
	go func() {
		defer close(sweeperDone)
		auth.NewSweeper(authenticator, cfg.SweepInterval, log).Run(sweepCtx)
	}()

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))

	shutdownErr := server.Shutdown(constants.ShutdownTimeout)

	stopSweeper()
	<-sweeperDone

	if shutdownErr != nil {
		log.Error("shutdown_error", slog.Any("error", shutdownErr))
		return
	}

	log.Info("server_stopped_cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
