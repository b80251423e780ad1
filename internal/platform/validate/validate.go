// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a declarative rule engine for decoded JSON payloads.
//
// # Architecture
//
// Handlers declare a [RuleSet] per endpoint and run it against the decoded
// request body after sanitization. Validation never fails with an error of its
// own; it only reports the rule violations it found.
package validate

import (
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/taibuivan/todo/internal/platform/apperr"
	"github.com/taibuivan/todo/pkg/uuid"
)

// IsUUID reports whether s is a version 4 UUID (case-insensitive).
func IsUUID(s string) bool {
	return uuid.IsV4(s)
}

// IsDatetime reports whether s is an RFC 3339 timestamp with a zone offset or Z.
func IsDatetime(s string) bool {
	_, err := time.Parse(time.RFC3339, s)
	return err == nil
}

// Validator evaluates a [RuleSet] and keeps the errors of the last run.
//
// # Concurrency
//
// Validator is not safe for concurrent use. Create one per request.
type Validator struct {
	errs  map[string][]string
	order []string
}

// New returns an empty Validator.
func New() *Validator {
	return &Validator{errs: map[string][]string{}}
}

// Validate checks data against rules and reports whether it is valid.
// Errors from a previous call are discarded.
func (v *Validator) Validate(data map[string]any, rules RuleSet) bool {
	v.errs = map[string][]string{}
	v.order = v.order[:0]

	for _, field := range rules {
		value, present := data[field.Name]
		if value == nil {
			present = false
		}

		for _, rule := range field.Rules {
			if message, failed := check(field.Name, value, present, rule); failed {
				v.add(field.Name, message)
			}
		}
	}

	return len(v.order) == 0
}

// Errors returns a copy of the field → messages mapping of the last run.
func (v *Validator) Errors() map[string][]string {
	out := make(map[string][]string, len(v.errs))
	for field, messages := range v.errs {
		out[field] = append([]string(nil), messages...)
	}
	return out
}

// FirstError returns the first message of the first failing field, in
// rule-set order.
func (v *Validator) FirstError() (string, bool) {
	if len(v.order) == 0 {
		return "", false
	}
	return v.errs[v.order[0]][0], true
}

// HasErrors reports whether the last run found any violation.
func (v *Validator) HasErrors() bool {
	return len(v.order) > 0
}

// Err returns a VALIDATION_ERROR [apperr.AppError] whose message is the first
// error and whose details carry the full mapping, or nil when valid.
func (v *Validator) Err() error {
	message, failed := v.FirstError()
	if !failed {
		return nil
	}
	return apperr.ValidationError(message, v.Errors())
}

func (v *Validator) add(field, message string) {
	if _, seen := v.errs[field]; !seen {
		v.order = append(v.order, field)
	}
	v.errs[field] = append(v.errs[field], message)
}

// check applies one rule. Only Required looks at absent values.
func check(field string, value any, present bool, rule Rule) (string, bool) {
	if rule.kind == KindRequired {
		if !present || value == "" {
			return field + " is required", true
		}
		return "", false
	}

	if !present {
		return "", false
	}

	switch rule.kind {
	case KindString:
		if _, ok := value.(string); !ok {
			return field + " must be a string", true
		}

	case KindBoolean:
		if _, ok := value.(bool); !ok {
			return field + " must be a boolean", true
		}

	case KindArray:
		if _, ok := asList(value); !ok {
			return field + " must be an array", true
		}

	case KindMinLength:
		if s, ok := value.(string); ok && utf8.RuneCountInString(s) < rule.limit {
			return fmt.Sprintf("%s must be at least %d characters", field, rule.limit), true
		}

	case KindMaxLength:
		if s, ok := value.(string); ok && utf8.RuneCountInString(s) > rule.limit {
			return fmt.Sprintf("%s must not exceed %d characters", field, rule.limit), true
		}

	case KindNotEmpty:
		if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
			return field + " cannot be empty or whitespace only", true
		}

	case KindUUID:
		if s, ok := value.(string); !ok || !IsUUID(s) {
			return field + " must be a valid UUID", true
		}

	case KindDatetime:
		if s, ok := value.(string); !ok || !IsDatetime(s) {
			return field + " must be a valid ISO 8601 datetime", true
		}

	case KindEnum:
		for _, allowed := range rule.allowed {
			if identical(value, allowed) {
				return "", false
			}
		}
		return fmt.Sprintf("%s must be one of: %s", field, joinValues(rule.allowed)), true

	case KindMaxItems:
		if items, ok := asList(value); ok && len(items) > rule.limit {
			return fmt.Sprintf("%s must not exceed %d items", field, rule.limit), true
		}

	case KindArrayItemMaxLength:
		items, _ := asList(value)
		for _, item := range items {
			if s, ok := item.(string); ok && utf8.RuneCountInString(s) > rule.limit {
				return fmt.Sprintf("%s items must not exceed %d characters", field, rule.limit), true
			}
		}

	default:
		panic(fmt.Sprintf("validate: unhandled rule kind %s", rule.kind))
	}

	return "", false
}

// asList normalizes the list shapes produced by encoding/json and by callers
// building payloads by hand.
func asList(value any) ([]any, bool) {
	switch list := value.(type) {
	case []any:
		return list, true
	case []string:
		items := make([]any, len(list))
		for i, s := range list {
			items[i] = s
		}
		return items, true
	}
	return nil, false
}

// identical compares without type coercion: 1 and "1" differ, as do 1 and 1.0
// when their Go types differ.
func identical(a, b any) bool {
	typeA, typeB := reflect.TypeOf(a), reflect.TypeOf(b)
	if typeA != typeB || typeA == nil || !typeA.Comparable() {
		return false
	}
	return a == b
}

func joinValues(values []any) string {
	parts := make([]string, len(values))
	for i, value := range values {
		parts[i] = fmt.Sprint(value)
	}
	return strings.Join(parts, ", ")
}
