// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"net/http"
	"regexp"

	"github.com/taibuivan/todo/internal/platform/apperr"
	"github.com/taibuivan/todo/internal/platform/ctxutil"
	"github.com/taibuivan/todo/internal/platform/router"
	"github.com/taibuivan/todo/internal/platform/sec"
)

// bearerPattern extracts the credential from an Authorization header. The
// scheme name is matched case-insensitively.
var bearerPattern = regexp.MustCompile(`(?i)^Bearer\s+(\S.*)$`)

// TokenVerifier checks a raw bearer token: signature, expiry and revocation.
//
// Defined here so route decorators do not depend on the auth package.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*sec.AuthClaims, error)
}

// BearerToken returns the token carried by the Authorization header, if any.
// Headers that are not of the form "Bearer <token>" count as no token.
func BearerToken(request *http.Request) (string, bool) {
	matches := bearerPattern.FindStringSubmatch(request.Header.Get("Authorization"))
	if matches == nil {
		return "", false
	}
	return matches[1], true
}

// RequireAuth wraps a route handler so it only runs for a verified bearer.
//
// # Flow
//  1. Extract the token; absent or malformed headers yield 401.
//  2. Verify it through [TokenVerifier]; any failure yields 401 with one message.
//  3. Store the claims and raw token in the request context.
func RequireAuth(verifier TokenVerifier, next router.HandlerFunc) router.HandlerFunc {
	return func(request *http.Request, params router.Params) (router.Response, error) {

		// ── 1. Extraction ─────────────────────────────────────────────────
		token, ok := BearerToken(request)
		if !ok {
			return router.Response{}, apperr.Unauthorized("Missing or invalid authorization token")
		}

		// ── 2. Verification ───────────────────────────────────────────────
		claims, err := verifier.Verify(request.Context(), token)
		if err != nil {
			return router.Response{}, apperr.Unauthorized("Invalid or expired token")
		}

		// ── 3. Context Injection ──────────────────────────────────────────
		ctx := ctxutil.WithAuthUser(request.Context(), claims, token)
		return next(request.WithContext(ctx), params)
	}
}
