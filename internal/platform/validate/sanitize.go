// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate

import (
	"html"
	"strings"

	"github.com/taibuivan/todo/pkg/slice"
)

// SanitizeString trims surrounding whitespace and HTML-escapes <, >, &, ' and ".
func SanitizeString(value string) string {
	return html.EscapeString(strings.TrimSpace(value))
}

// SanitizeArray applies [SanitizeString] to every string element and passes
// other elements through unchanged.
func SanitizeArray(values []any) []any {
	return slice.Map(values, func(item any) any {
		if s, ok := item.(string); ok {
			return SanitizeString(s)
		}
		return item
	})
}

// SanitizeFields sanitizes the named keys of a decoded payload in place.
// Strings are sanitized, lists are sanitized element-wise, and any other
// value (including null) is left for the validator to judge.
func SanitizeFields(data map[string]any, fields ...string) {
	for _, field := range fields {
		switch value := data[field].(type) {
		case string:
			data[field] = SanitizeString(value)
		case []any:
			data[field] = SanitizeArray(value)
		}
	}
}
