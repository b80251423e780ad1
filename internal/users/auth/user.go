// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements user accounts, bearer-token authentication and the
token blacklist.

It defines the domain entities (User, BlacklistEntry), the Authenticator that
issues, verifies and revokes tokens, and the HTTP endpoints for signup, login,
logout and the caller's profile.

# Architecture

Entities defined here have no storage dependencies. The blacklist has three
interchangeable stores (PostgreSQL, Redis, Badger) behind [BlacklistRepository].
*/
package auth

import "time"

// # Domain Entities

// User represents a registered account.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserSummary is the user shape embedded in signup and login responses.
type UserSummary struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Summary returns the public subset of the account.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// BlacklistEntry records a token revoked before its natural expiry.
//
// Token is the raw encoded JWT and acts as the primary key. ExpiresAt is the
// token's own exp claim; after it passes the entry can be swept.
type BlacklistEntry struct {
	Token         string    `json:"token"`
	UserID        string    `json:"userId"`
	BlacklistedAt time.Time `json:"blacklistedAt"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

// Expired reports whether the entry's token is past its expiry at now.
func (e *BlacklistEntry) Expired(now time.Time) bool {
	return e.ExpiresAt.Before(now)
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

// # Field Identifiers

// Field names used by validation and request decoding.
const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
)
