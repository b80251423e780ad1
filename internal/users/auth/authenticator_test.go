// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/todo/internal/platform/sec"
	"github.com/taibuivan/todo/internal/users/auth"
)

const testSecret = "test-secret-0123456789"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestAuthenticator(t *testing.T, blacklist auth.BlacklistRepository, clock *fakeClock, opts ...auth.Option) *auth.Authenticator {
	t.Helper()

	tokens, err := sec.NewTokenService(testSecret, time.Hour, "todo-api")
	require.NoError(t, err)
	tokens = tokens.WithClock(clock.Now)

	opts = append(opts, auth.WithClock(clock.Now))
	return auth.NewAuthenticator(tokens, blacklist, discardLogger(), opts...)
}

/*
TestAuthenticator_Lifecycle walks a token through Issued, Valid and Revoked.
*/
func TestAuthenticator_Lifecycle(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	blacklist := newMemoryBlacklist()
	observer := &countingObserver{}
	authenticator := newTestAuthenticator(t, blacklist, clock, auth.WithObserver(observer))

	token, err := authenticator.Issue("user-1", "alice")
	require.NoError(t, err)

	claims, err := authenticator.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID())
	assert.Equal(t, "alice", claims.Username)

	require.NoError(t, authenticator.Revoke(ctx, token))
	_, err = authenticator.Verify(ctx, token)
	assert.ErrorIs(t, err, auth.ErrRevokedToken)

	// Second revoke is tolerated and keeps a single entry
	require.NoError(t, authenticator.Revoke(ctx, token))
	_, err = authenticator.Verify(ctx, token)
	assert.ErrorIs(t, err, auth.ErrRevokedToken)

	count, err := authenticator.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	entry := blacklist.entries[token]
	assert.Equal(t, "user-1", entry.UserID)
	assert.Equal(t, clock.Now(), entry.BlacklistedAt)
	assert.True(t, entry.ExpiresAt.Equal(clock.Now().Add(time.Hour)))
	assert.Equal(t, 2, observer.revoked)
}

/*
TestAuthenticator_Expiry verifies expired tokens fail whether or not revoked.
*/
func TestAuthenticator_Expiry(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	authenticator := newTestAuthenticator(t, newMemoryBlacklist(), clock)

	revoked, err := authenticator.Issue("user-1", "alice")
	require.NoError(t, err)
	untouched, err := authenticator.Issue("user-1", "alice")
	require.NoError(t, err)
	require.NotEqual(t, revoked, untouched)

	require.NoError(t, authenticator.Revoke(ctx, revoked))

	clock.Advance(time.Hour + time.Second)

	_, err = authenticator.Verify(ctx, revoked)
	assert.ErrorIs(t, err, sec.ErrExpiredToken)
	_, err = authenticator.Verify(ctx, untouched)
	assert.ErrorIs(t, err, sec.ErrExpiredToken)
}

/*
TestAuthenticator_RevokeUnusableToken ensures invalid tokens are never stored.
*/
func TestAuthenticator_RevokeUnusableToken(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	blacklist := newMemoryBlacklist()
	authenticator := newTestAuthenticator(t, blacklist, clock)

	expired, err := authenticator.Issue("user-1", "alice")
	require.NoError(t, err)
	clock.Advance(2 * time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not.a.jwt"},
		{"empty", ""},
		{"expired", expired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, authenticator.Revoke(ctx, tt.token))
		})
	}

	assert.Zero(t, blacklist.addedCalls)
}

/*
TestAuthenticator_Sweep removes only entries whose expiry has passed.
*/
func TestAuthenticator_Sweep(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	blacklist := newMemoryBlacklist()
	observer := &countingObserver{}
	authenticator := newTestAuthenticator(t, blacklist, clock, auth.WithObserver(observer))

	early, err := authenticator.Issue("user-1", "alice")
	require.NoError(t, err)
	require.NoError(t, authenticator.Revoke(ctx, early))

	clock.Advance(30 * time.Minute)
	late, err := authenticator.Issue("user-2", "bob")
	require.NoError(t, err)
	require.NoError(t, authenticator.Revoke(ctx, late))

	// Nothing expired yet
	removed, err := authenticator.Sweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, removed)

	// Only the first token is past its expiry
	clock.Advance(45 * time.Minute)
	removed, err = authenticator.Sweep(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)
	assert.NotContains(t, blacklist.entries, early)
	assert.Contains(t, blacklist.entries, late)

	// Idempotent
	removed, err = authenticator.Sweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, removed)
	assert.EqualValues(t, 1, observer.swept)
}

/*
TestAuthenticator_FailOpen keeps tokens usable when the blacklist is down.
*/
func TestAuthenticator_FailOpen(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	blacklist := newMemoryBlacklist()
	observer := &countingObserver{}
	authenticator := newTestAuthenticator(t, blacklist, clock, auth.WithObserver(observer))

	token, err := authenticator.Issue("user-1", "alice")
	require.NoError(t, err)

	blacklist.lookupErr = errStoreDown
	claims, err := authenticator.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID())
	assert.Equal(t, 1, observer.lookupFailed)
}

func TestAuthenticator_RevokeStoreFailure(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	blacklist := newMemoryBlacklist()
	blacklist.addErr = errStoreDown
	authenticator := newTestAuthenticator(t, blacklist, clock)

	token, err := authenticator.Issue("user-1", "alice")
	require.NoError(t, err)

	assert.ErrorIs(t, authenticator.Revoke(ctx, token), errStoreDown)
}
