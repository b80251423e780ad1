// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond provides HTTP response helpers used by the dispatcher and
// the infrastructure endpoints.
//
// # Architecture
//
// Success bodies are written as-is (no envelope). Every error, whatever its
// origin, is rendered through [Error] so that clients always receive the
// same {error, code} shape.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/taibuivan/todo/internal/platform/apperr"
	"github.com/taibuivan/todo/internal/platform/ctxutil"
)

// ErrorEnvelope is the JSON body for error responses.
type ErrorEnvelope struct {
	Error   string         `json:"error"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response.
func OK(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusOK, data)
}

// Error converts any Go error into the standardized JSON error response.
//
// When debug is false the details block is always omitted. When debug is true,
// details are attached and an internal error's cause text is exposed under
// details.cause.
func Error(writer http.ResponseWriter, request *http.Request, err error, debug bool) {
	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		appError = apperr.Internal(err)
	}

	if appError.HTTPStatus >= http.StatusInternalServerError {
		ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.String("method", request.Method),
			slog.String("path", request.URL.Path),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
			slog.Any("cause", appError.Cause),
		)
	}

	envelope := ErrorEnvelope{Error: appError.Message, Code: appError.Code}
	if debug {
		envelope.Details = debugDetails(appError)
	}

	JSON(writer, appError.HTTPStatus, envelope)
}

func debugDetails(appError *apperr.AppError) map[string]any {
	if appError.Cause == nil {
		return appError.Details
	}

	details := make(map[string]any, len(appError.Details)+1)
	for key, value := range appError.Details {
		details[key] = value
	}
	details["cause"] = appError.Cause.Error()
	return details
}
