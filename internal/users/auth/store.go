// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User (ID and PasswordHash already set)

		Returns:
		  - error: apperr.Conflict when the username or email is taken
	*/
	Create(context context.Context, user *User) error

	/*
		FindByID returns the account with the given ID.

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByUsername returns the account with the given username.

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)
}

// # Blacklist Data Access

// BlacklistRepository persists revoked tokens.
//
// Implementations must make Add atomic per token: concurrent or repeated
// inserts of the same token succeed without error and keep one entry.
type BlacklistRepository interface {

	/*
		Add stores a revoked token. Adding an existing token is not an error.

		Parameters:
		  - context: context.Context
		  - entry: *BlacklistEntry

		Returns:
		  - error: Persistence failures
	*/
	Add(context context.Context, entry *BlacklistEntry) error

	/*
		Contains reports whether the raw token has been revoked.

		Returns:
		  - bool: true when an entry exists
		  - error: Lookup failures
	*/
	Contains(context context.Context, token string) (bool, error)

	/*
		DeleteExpired removes entries whose ExpiresAt is before now.

		Returns:
		  - int64: Number of entries removed
		  - error: Persistence failures
	*/
	DeleteExpired(context context.Context, now time.Time) (int64, error)

	// Count returns the number of stored entries.
	Count(context context.Context) (int64, error)
}
