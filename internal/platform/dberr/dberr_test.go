// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/todo/internal/platform/apperr"
	"github.com/taibuivan/todo/internal/platform/dberr"
)

/*
TestWrap verifies the mapping from driver errors to application errors.
*/
func TestWrap(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}

	tests := []struct {
		name    string
		err     error
		code    string
		message string
	}{
		{"no_rows", pgx.ErrNoRows, apperr.CodeNotFound, "List not found"},
		{"wrapped_no_rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), apperr.CodeNotFound, "List not found"},
		{"unique_violation", unique, apperr.CodeConflict, "List already exists"},
		{"other", errors.New("connection reset"), apperr.CodeInternal, "An internal error occurred"},
		{"app_error_passthrough", apperr.Unauthorized("nope"), apperr.CodeUnauthorized, "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ae := apperr.As(dberr.Wrap(tt.err, "List"))
			require.NotNil(t, ae)
			assert.Equal(t, tt.code, ae.Code)
			assert.Equal(t, tt.message, ae.Message)
		})
	}

	assert.NoError(t, dberr.Wrap(nil, "List"))
}

/*
TestIsUniqueViolation checks SQLSTATE detection through wrapping.
*/
func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, dberr.IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, dberr.IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, dberr.IsUniqueViolation(errors.New("plain")))
}
