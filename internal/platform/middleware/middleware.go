// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package middleware provides the cross-cutting HTTP processing chain.

Standard Stack:

  - Trace: RequestID generation for log correlation.
  - Guard: CORS headers for browser clients.
  - Access log: one line per request for routes served outside the dispatcher.
  - Identity: Bearer-token authentication for individual routes (authz.go).

API requests are logged by the dispatcher itself, so RequestLogger is only
mounted on the infrastructure endpoints.
*/
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/todo/internal/platform/constants"
	"github.com/taibuivan/todo/internal/platform/ctxutil"
	"github.com/taibuivan/todo/pkg/uuidv7"
)

// # Request Tracing

// RequestID attaches a correlation ID to every request for log tracing.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// 1. Reuse the client's ID when provided
			requestID := request.Header.Get(constants.HeaderXRequestID)

			// 2. Otherwise generate a time-sortable one
			if requestID == "" {
				requestID = uuidv7.New()
			}

			// 3. Inject into context and response headers
			ctx := ctxutil.WithRequestID(request.Context(), requestID)
			writer.Header().Set(constants.HeaderXRequestID, requestID)

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// # Cross-Origin Resource Sharing

// OriginPolicy decides which browser origins may call the API.
type OriginPolicy interface {
	AllowsOrigin(origin string) bool
}

// CORS sets the cross-origin headers for allowed origins. Preflight requests
// continue down the chain and are answered by the dispatcher.
func CORS(policy OriginPolicy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			origin := request.Header.Get(constants.HeaderOrigin)

			if origin != "" && policy.AllowsOrigin(origin) {
				header := writer.Header()
				header.Set("Access-Control-Allow-Origin", origin)
				header.Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
				header.Set("Access-Control-Allow-Headers", "Accept, Content-Type, Authorization, X-Request-ID")
				header.Set("Access-Control-Expose-Headers", "X-Request-ID")
				header.Set("Access-Control-Max-Age", "300")
				header.Add("Vary", constants.HeaderOrigin)
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// # Access Logging

// RequestLogger writes one "http_request_finished" line per request, with the
// same fields the dispatcher logs.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			startTime := time.Now()
			wrapped := chimw.NewWrapResponseWriter(writer, request.ProtoMajor)

			defer func() {
				status := wrapped.Status()
				if status == 0 {
					status = http.StatusOK
				}

				logLevel := slog.LevelInfo
				if status >= http.StatusInternalServerError {
					logLevel = slog.LevelError
				} else if status >= http.StatusBadRequest {
					logLevel = slog.LevelWarn
				}

				logger.Log(request.Context(), logLevel, "http_request_finished",
					slog.String("request_id", ctxutil.GetRequestID(request.Context())),
					slog.String("method", request.Method),
					slog.String("path", request.URL.Path),
					slog.Int("status", status),
					slog.Float64("duration_ms", float64(time.Since(startTime).Microseconds())/1000),
				)
			}()

			next.ServeHTTP(wrapped, request)
		})
	}
}
