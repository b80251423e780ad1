package schema

// TokenBlacklistTable represents the 'token_blacklist' table
type TokenBlacklistTable struct {
	Table         string
	Token         string
	UserID        string
	BlacklistedAt string
	ExpiresAt     string
}

// TokenBlacklist is the schema definition for token_blacklist
var TokenBlacklist = TokenBlacklistTable{
	Table:         "token_blacklist",
	Token:         "token",
	UserID:        "user_id",
	BlacklistedAt: "blacklisted_at",
	ExpiresAt:     "expires_at",
}

func (t TokenBlacklistTable) Columns() []string {
	return []string{t.Token, t.UserID, t.BlacklistedAt, t.ExpiresAt}
}
