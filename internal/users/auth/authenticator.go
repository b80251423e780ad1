// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/todo/internal/platform/sec"
)

// ErrRevokedToken is returned by Verify for tokens found in the blacklist.
var ErrRevokedToken = errors.New("auth: token revoked")

// RevocationObserver receives blacklist events for metrics.
type RevocationObserver interface {
	TokenRevoked()
	EntriesSwept(n int64)
	LookupFailed()
}

type noopObserver struct{}

func (noopObserver) TokenRevoked()      {}
func (noopObserver) EntriesSwept(int64) {}
func (noopObserver) LookupFailed()      {}

// Authenticator drives the token lifecycle: Issued, then Valid until it is
// either Expired by its own exp claim or Revoked through the blacklist.
//
// # Verification
//
// A token authenticates only if all three independent checks pass: signature,
// expiry, and absence from the blacklist.
type Authenticator struct {
	tokens    *sec.TokenService
	blacklist BlacklistRepository
	logger    *slog.Logger
	observer  RevocationObserver
	now       func() time.Time
}

// Option customizes an [Authenticator].
type Option func(*Authenticator)

// WithObserver reports blacklist events to observer.
func WithObserver(observer RevocationObserver) Option {
	return func(a *Authenticator) {
		if observer != nil {
			a.observer = observer
		}
	}
}

// WithClock overrides the time source used for blacklist timestamps and sweeps.
func WithClock(now func() time.Time) Option {
	return func(a *Authenticator) { a.now = now }
}

// NewAuthenticator wires the token service to a blacklist store.
func NewAuthenticator(tokens *sec.TokenService, blacklist BlacklistRepository, logger *slog.Logger, opts ...Option) *Authenticator {
	authenticator := &Authenticator{
		tokens:    tokens,
		blacklist: blacklist,
		logger:    logger,
		observer:  noopObserver{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(authenticator)
	}
	return authenticator
}

// Issue signs a new token for the user.
func (a *Authenticator) Issue(userID, username string) (string, error) {
	token, _, err := a.tokens.Issue(userID, username)
	if err != nil {
		return "", fmt.Errorf("auth_issue_failed: %w", err)
	}
	return token, nil
}

/*
Verify returns the claims of a usable token.

Errors are [sec.ErrInvalidToken], [sec.ErrExpiredToken] or [ErrRevokedToken].
Callers must not expose which one occurred.

# Security

A blacklist lookup failure is treated as "not revoked" so that a store outage
does not lock every user out. This favors availability over strictness: a
revoked token stays usable while the store is unreachable. The failure is
logged at WARN and counted.
*/
func (a *Authenticator) Verify(ctx context.Context, token string) (*sec.AuthClaims, error) {

	// 1. Signature and expiry
	claims, err := a.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	// 2. Revocation
	revoked, err := a.blacklist.Contains(ctx, token)
	if err != nil {
		a.observer.LookupFailed()
		a.logger.WarnContext(ctx, "auth_blacklist_lookup_failed",
			slog.String("user_id", claims.UserID()),
			slog.Any("error", err),
		)
		return claims, nil
	}
	if revoked {
		return nil, ErrRevokedToken
	}

	return claims, nil
}

/*
Revoke adds a currently valid token to the blacklist.

Malformed or expired tokens are ignored: they can never verify again, so
storing them has no effect. Revoking the same token twice is not an error.

Returns:
  - error: Persistence failures from the blacklist store
*/
func (a *Authenticator) Revoke(ctx context.Context, token string) error {
	claims, err := a.tokens.Parse(token)
	if err != nil {
		return nil
	}

	entry := &BlacklistEntry{
		Token:         token,
		UserID:        claims.UserID(),
		BlacklistedAt: a.now(),
		ExpiresAt:     claims.ExpiresAtTime(),
	}

	if err := a.blacklist.Add(ctx, entry); err != nil {
		return fmt.Errorf("auth_revoke_failed: %w", err)
	}

	a.observer.TokenRevoked()
	return nil
}

// Sweep deletes blacklist entries whose token has expired and returns how
// many were removed. Running it repeatedly is safe.
func (a *Authenticator) Sweep(ctx context.Context) (int64, error) {
	removed, err := a.blacklist.DeleteExpired(ctx, a.now())
	if err != nil {
		return 0, fmt.Errorf("auth_sweep_failed: %w", err)
	}

	a.observer.EntriesSwept(removed)
	return removed, nil
}

// Count returns the number of stored blacklist entries.
func (a *Authenticator) Count(ctx context.Context) (int64, error) {
	total, err := a.blacklist.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("auth_count_failed: %w", err)
	}
	return total, nil
}
