// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid generates and checks the random identifiers used for lists,
tasks and users.

Identifiers are Version 4 values rendered in lowercase canonical form. The
format check accepts either letter case so that clients echoing upper-case
IDs are not rejected.
*/
package uuid

import (
	"regexp"

	"github.com/google/uuid"
)

var v4Pattern = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// # Generators

// New generates a new random UUIDv4 string.
func New() string {
	return uuid.NewString()
}

// # Checks

// IsV4 reports whether s is a canonical UUID version 4 string.
func IsV4(s string) bool {
	return v4Pattern.MatchString(s)
}
