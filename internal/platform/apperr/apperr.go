// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error type for the todo API.

It bridges low-level storage and library errors and the JSON error envelope
returned to clients.

Architecture:

  - AppError: A machine-readable Code, a client-safe Message, and the HTTP status.
  - Cause: The wrapped internal error. Never rendered unless debug mode is on.
  - Details: Structured extras (validation errors). Rendered only in debug mode.

Every error that leaves a handler should be an [AppError]. Anything else is
rendered as INTERNAL_ERROR by the dispatcher.
*/
package apperr

import (
	"errors"
	"net/http"
)

// Stable error codes. Clients match on these, so they never change.
const (
	CodeNotFound             = "NOT_FOUND"
	CodeValidation           = "VALIDATION_ERROR"
	CodeInvalidJSON          = "INVALID_JSON"
	CodeUnsupportedMediaType = "UNSUPPORTED_MEDIA_TYPE"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeConflict             = "CONFLICT"
	CodeInternal             = "INTERNAL_ERROR"
	CodeInvalidUUID          = "INVALID_UUID"
)

// AppError is the canonical error type for the API.
//
// # Security
//
// Cause is for server-side logging only. It reaches the client exclusively
// through the debug-mode details block.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND").
	Code string `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"error"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds structured context such as per-field validation errors.
	Details map[string]any `json:"details,omitempty"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// WithDetails returns a copy of the error carrying the given details.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

// # Client Errors (4xx)

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("List") // "List not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// EndpointNotFound is returned by the dispatcher when no route matches.
func EndpointNotFound() *AppError {
	return NotFound("Endpoint")
}

// Unauthorized creates a 401 [AppError].
func Unauthorized(msg string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Conflict creates a 409 [AppError] for unique-constraint violations.
func Conflict(msg string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    msg,
		HTTPStatus: http.StatusConflict,
	}
}

// ValidationError creates a 400 [AppError]. The per-field error map, when
// present, is attached under details.errors.
func ValidationError(msg string, fieldErrors map[string][]string) *AppError {
	err := &AppError{
		Code:       CodeValidation,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
	}
	if len(fieldErrors) > 0 {
		err.Details = map[string]any{"errors": fieldErrors}
	}
	return err
}

// InvalidJSON creates a 400 [AppError] for undecodable request bodies.
func InvalidJSON(cause error) *AppError {
	return &AppError{
		Code:       CodeInvalidJSON,
		Message:    "Invalid JSON in request body",
		HTTPStatus: http.StatusBadRequest,
		Cause:      cause,
	}
}

// UnsupportedMediaType creates a 415 [AppError] for non-JSON write requests.
func UnsupportedMediaType() *AppError {
	return &AppError{
		Code:       CodeUnsupportedMediaType,
		Message:    "Content-Type must be application/json",
		HTTPStatus: http.StatusUnsupportedMediaType,
	}
}

// InvalidUUID creates a 400 [AppError] for malformed identifiers.
//
// Example:
//
//	apperr.InvalidUUID("list") // "Invalid list ID format"
func InvalidUUID(resource string) *AppError {
	return &AppError{
		Code:       CodeInvalidUUID,
		Message:    "Invalid " + resource + " ID format",
		HTTPStatus: http.StatusBadRequest,
	}
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging and is never sent to the client outside
// debug mode.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "An internal error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// HasCode reports whether err carries the given error code.
func HasCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}
