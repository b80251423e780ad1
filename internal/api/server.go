// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and the
application dispatcher into a runnable [http.Server].

Architecture:

  - chi serves the infrastructure endpoints (/health, /ready, /metrics) and
    the shared middleware chain. Those endpoints get their own access log.
  - Everything else falls through to the [router.Dispatcher], which owns the
    versioned API table, error rendering and per-request logging.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/todo/internal/platform/config"
	"github.com/taibuivan/todo/internal/platform/constants"
	"github.com/taibuivan/todo/internal/platform/middleware"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// Handlers groups the HTTP handlers mounted by the server.
type Handlers struct {
	// Liveness is the /health handler.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler.
	Readiness http.HandlerFunc

	// Metrics serves the Prometheus exposition. Optional.
	Metrics http.Handler

	// API dispatches the versioned application routes.
	API http.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the middleware chain and mounts
// the handlers.
func NewServer(cfg *config.Config, log *slog.Logger, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	r.Use(middleware.RequestID())
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(cfg))

	// # Infrastructure Endpoints
	r.Group(func(infra chi.Router) {
		infra.Use(middleware.RequestLogger(log))
		infra.Get("/health", h.Liveness)
		infra.Get("/ready", h.Readiness)
		if h.Metrics != nil {
			infra.Method(http.MethodGet, "/metrics", h.Metrics)
		}
	})

	// # Application API
	// The dispatcher answers unknown paths and methods with the JSON 404.
	r.Handle("/*", h.API)
	r.NotFound(h.API.ServeHTTP)
	r.MethodNotAllowed(h.API.ServeHTTP)

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the root handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
