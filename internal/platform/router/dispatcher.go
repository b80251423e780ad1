// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package router

import (
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"runtime"
	"time"

	"github.com/taibuivan/todo/internal/platform/apperr"
	"github.com/taibuivan/todo/internal/platform/ctxutil"
	"github.com/taibuivan/todo/internal/platform/respond"
)

// Observer receives one observation per dispatched request.
type Observer interface {
	ObserveRequest(method, pattern string, status int, elapsed time.Duration)
}

// Option configures a [Dispatcher].
type Option func(*Dispatcher)

// WithDebug exposes error details in responses.
func WithDebug(debug bool) Option {
	return func(d *Dispatcher) { d.debug = debug }
}

// WithObserver reports every request to observer.
func WithObserver(observer Observer) Option {
	return func(d *Dispatcher) { d.observer = observer }
}

// Dispatcher is the [http.Handler] that serves a [Router]'s table.
//
// For every request it writes exactly one "http_request_finished" log line,
// whether the request matched, missed, failed or panicked.
type Dispatcher struct {
	routes   *Router
	logger   *slog.Logger
	debug    bool
	observer Observer
}

// NewDispatcher builds a Dispatcher over routes.
func NewDispatcher(routes *Router, logger *slog.Logger, opts ...Option) *Dispatcher {
	dispatcher := &Dispatcher{routes: routes, logger: logger}
	for _, opt := range opts {
		opt(dispatcher)
	}
	return dispatcher
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (recorder *statusRecorder) WriteHeader(code int) {
	if recorder.wroteHeader {
		return
	}
	recorder.status = code
	recorder.wroteHeader = true
	recorder.ResponseWriter.WriteHeader(code)
}

func (recorder *statusRecorder) Write(body []byte) (int, error) {
	if !recorder.wroteHeader {
		recorder.WriteHeader(http.StatusOK)
	}
	return recorder.ResponseWriter.Write(body)
}

// ServeHTTP implements [http.Handler].
func (d *Dispatcher) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	startTime := time.Now()
	pattern := "unmatched"

	requestLogger := d.logger.With(
		slog.String("request_id", ctxutil.GetRequestID(request.Context())),
		slog.String("method", request.Method),
		slog.String("path", request.URL.Path),
	)
	ctx := ctxutil.WithLogger(request.Context(), requestLogger)
	request = request.WithContext(ctx)
	recorder := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}

	defer func() {
		elapsed := time.Since(startTime)

		logLevel := slog.LevelInfo
		if recorder.status >= http.StatusInternalServerError {
			logLevel = slog.LevelError
		} else if recorder.status >= http.StatusBadRequest {
			logLevel = slog.LevelWarn
		}

		requestLogger.Log(ctx, logLevel, "http_request_finished",
			slog.Int("status", recorder.status),
			slog.Float64("duration_ms", float64(elapsed.Microseconds())/1000),
		)

		if d.observer != nil {
			d.observer.ObserveRequest(request.Method, pattern, recorder.status, elapsed)
		}
	}()

	// Preflight requests are answered here and never routed.
	if request.Method == http.MethodOptions {
		recorder.WriteHeader(http.StatusNoContent)
		return
	}

	match, found := d.routes.Match(request.Method, request.URL.Path)
	if !found {
		respond.Error(recorder, request, apperr.EndpointNotFound(), d.debug)
		return
	}
	pattern = match.Pattern

	if match.RequireJSON && !isJSON(request.Header.Get("Content-Type")) {
		respond.Error(recorder, request, apperr.UnsupportedMediaType(), d.debug)
		return
	}

	response, err := d.invoke(request, match)
	if err != nil {
		respond.Error(recorder, request, err, d.debug)
		return
	}

	write(recorder, response)
}

// invoke runs the handler and turns a panic into an internal error.
func (d *Dispatcher) invoke(request *http.Request, match *Match) (response Response, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			stackTrace := make([]byte, 4096)
			length := runtime.Stack(stackTrace, false)

			ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "panic_recovered",
				slog.Any("error", recovered),
				slog.String("stack", string(stackTrace[:length])),
			)
			err = apperr.Internal(fmt.Errorf("panic: %v", recovered))
		}
	}()

	return match.Handler(request, match.Params)
}

func write(writer http.ResponseWriter, response Response) {
	status := response.Status
	if status == 0 {
		status = http.StatusOK
	}

	if status == http.StatusNoContent {
		writer.WriteHeader(status)
		return
	}

	respond.JSON(writer, status, response.Body)
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "application/json"
}
