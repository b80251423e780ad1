// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer provides generic pointer helpers.
*/
package pointer

// To returns a pointer to the provided value.
// It is useful when a struct field expects a pointer to a literal or a
// type-asserted value (e.g. pointer.To(completed)).
func To[T any](v T) *T {
	return &v
}
