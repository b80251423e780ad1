// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/todo/internal/platform/apperr"
	"github.com/taibuivan/todo/internal/platform/validate"
)

func run(rules validate.RuleSet, data map[string]any) *validate.Validator {
	v := validate.New()
	v.Validate(data, rules)
	return v
}

/*
TestValidator_Required tests absent, null, empty and falsy-but-present values.
*/
func TestValidator_Required(t *testing.T) {
	rules := validate.Rules(validate.Field("name", validate.Required()))

	tests := []struct {
		name     string
		data     map[string]any
		hasError bool
	}{
		{"absent", map[string]any{}, true},
		{"null", map[string]any{"name": nil}, true},
		{"empty_string", map[string]any{"name": ""}, true},
		{"zero_string", map[string]any{"name": "0"}, false},
		{"false_bool", map[string]any{"name": false}, false},
		{"whitespace_is_present", map[string]any{"name": "   "}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := run(rules, tt.data)
			assert.Equal(t, tt.hasError, v.HasErrors())
			if tt.hasError {
				assert.Equal(t, []string{"name is required"}, v.Errors()["name"])
			}
		})
	}
}

/*
TestValidator_NotEmpty verifies blank strings are caught independently of required.
*/
func TestValidator_NotEmpty(t *testing.T) {
	rules := validate.Rules(validate.Field("name", validate.NotEmpty()))

	assert.True(t, run(rules, map[string]any{"name": "   "}).HasErrors())
	assert.False(t, run(rules, map[string]any{"name": "x"}).HasErrors())
	assert.False(t, run(rules, map[string]any{}).HasErrors())

	// required alone accepts whitespace; notEmpty is what rejects it
	both := validate.Rules(validate.Field("name", validate.Required(), validate.NotEmpty()))
	v := run(both, map[string]any{"name": "\t "})
	assert.Equal(t, []string{"name cannot be empty or whitespace only"}, v.Errors()["name"])
}

/*
TestValidator_TypeChecks covers string, boolean and array on present and absent values.
*/
func TestValidator_TypeChecks(t *testing.T) {
	tests := []struct {
		name     string
		rule     validate.Rule
		value    any
		hasError bool
		message  string
	}{
		{"string_ok", validate.String(), "abc", false, ""},
		{"string_bad", validate.String(), 12.0, true, "f must be a string"},
		{"boolean_ok", validate.Boolean(), true, false, ""},
		{"boolean_bad", validate.Boolean(), "true", true, "f must be a boolean"},
		{"array_ok", validate.Array(), []any{"a"}, false, ""},
		{"array_strings_ok", validate.Array(), []string{"a"}, false, ""},
		{"array_bad", validate.Array(), "a", true, "f must be an array"},
		{"array_object_bad", validate.Array(), map[string]any{"a": 1.0}, true, "f must be an array"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := run(validate.Rules(validate.Field("f", tt.rule)), map[string]any{"f": tt.value})
			assert.Equal(t, tt.hasError, v.HasErrors())
			if tt.hasError {
				message, ok := v.FirstError()
				require.True(t, ok)
				assert.Equal(t, tt.message, message)
			}

			// Absent values always pass type checks.
			assert.False(t, run(validate.Rules(validate.Field("f", tt.rule)), map[string]any{}).HasErrors())
		})
	}
}

/*
TestValidator_Lengths verifies character counting and that non-strings are ignored.
*/
func TestValidator_Lengths(t *testing.T) {
	rules := validate.Rules(validate.Field("f", validate.MinLength(3), validate.MaxLength(5)))

	tests := []struct {
		name    string
		value   any
		message string
	}{
		{"within", "abcd", ""},
		{"too_short", "ab", "f must be at least 3 characters"},
		{"too_long", "abcdef", "f must not exceed 5 characters"},
		{"multibyte_counts_characters", "ééééé", ""},
		{"non_string_ignored", 123.0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := run(rules, map[string]any{"f": tt.value})
			message, _ := v.FirstError()
			assert.Equal(t, tt.message, message)
		})
	}
}

/*
TestValidator_UUID checks the version 4 textual form.
*/
func TestValidator_UUID(t *testing.T) {
	tests := []struct {
		value   any
		isValid bool
	}{
		{"550e8400-e29b-41d4-a716-446655440000", true},
		{"550E8400-E29B-41D4-A716-446655440000", true},
		{"not-a-uuid", false},
		{"550e8400-e29b-71d4-a716-446655440000", false}, // version 7 nibble
		{"550e8400-e29b-41d4-c716-446655440000", false}, // bad variant
		{"550e8400e29b41d4a716446655440000", false},
		{42.0, false},
	}

	for _, tt := range tests {
		v := run(validate.Rules(validate.Field("id", validate.UUID())), map[string]any{"id": tt.value})
		assert.Equal(t, !tt.isValid, v.HasErrors(), "value %v", tt.value)
	}
}

/*
TestValidator_Datetime checks timestamp parsing with offsets.
*/
func TestValidator_Datetime(t *testing.T) {
	tests := []struct {
		value   string
		isValid bool
	}{
		{"2026-01-15T10:00:00Z", true},
		{"2026-01-15T10:00:00+07:00", true},
		{"2026-01-15T10:00:00.123Z", true},
		{"2026-01-15", false},
		{"tomorrow", false},
		{"2026-13-45T10:00:00Z", false},
	}

	for _, tt := range tests {
		v := run(validate.Rules(validate.Field("dueDate", validate.Datetime())), map[string]any{"dueDate": tt.value})
		assert.Equal(t, !tt.isValid, v.HasErrors(), "value %q", tt.value)
	}

	v := run(validate.Rules(validate.Field("dueDate", validate.Datetime())), map[string]any{"dueDate": "nope"})
	message, _ := v.FirstError()
	assert.Equal(t, "dueDate must be a valid ISO 8601 datetime", message)
}

/*
TestValidator_Enum verifies membership uses type-preserving comparison.
*/
func TestValidator_Enum(t *testing.T) {
	rules := validate.Rules(validate.Field("priority", validate.Enum("low", "medium", "high")))

	assert.False(t, run(rules, map[string]any{"priority": "low"}).HasErrors())

	v := run(rules, map[string]any{"priority": "urgent"})
	message, _ := v.FirstError()
	assert.Equal(t, "priority must be one of: low, medium, high", message)

	numeric := validate.Rules(validate.Field("level", validate.Enum(1, 2)))
	assert.True(t, run(numeric, map[string]any{"level": "1"}).HasErrors())
	assert.True(t, run(numeric, map[string]any{"level": 1.0}).HasErrors())
	assert.False(t, run(numeric, map[string]any{"level": 1}).HasErrors())

	// Uncomparable values must not panic.
	assert.True(t, run(rules, map[string]any{"priority": []any{"low"}}).HasErrors())
}

/*
TestValidator_ArrayRules covers maxItems and arrayItemMaxLength.
*/
func TestValidator_ArrayRules(t *testing.T) {
	rules := validate.Rules(validate.Field("categories",
		validate.Array(), validate.MaxItems(2), validate.ArrayItemMaxLength(3),
	))

	assert.False(t, run(rules, map[string]any{"categories": []any{"a", "bcd"}}).HasErrors())

	v := run(rules, map[string]any{"categories": []any{"a", "b", "c"}})
	assert.Equal(t, []string{"categories must not exceed 2 items"}, v.Errors()["categories"])

	// Only one error even when several items are too long.
	v = run(rules, map[string]any{"categories": []any{"long1", "long2"}})
	assert.Equal(t, []string{"categories items must not exceed 3 characters"}, v.Errors()["categories"])

	// Non-string items are not measured.
	assert.False(t, run(rules, map[string]any{"categories": []any{1234.0}}).HasErrors())
}

/*
TestValidator_Ordering verifies errors accumulate per field and FirstError follows rule-set order.
*/
func TestValidator_Ordering(t *testing.T) {
	rules := validate.Rules(
		validate.Field("title", validate.Required(), validate.String(), validate.MaxLength(3)),
		validate.Field("completed", validate.Boolean()),
		validate.Field("description", validate.String(), validate.MaxLength(2)),
	)

	v := run(rules, map[string]any{
		"description": "long text",
		"completed":   "yes",
		"title":       "abcdef",
	})

	message, ok := v.FirstError()
	require.True(t, ok)
	assert.Equal(t, "title must not exceed 3 characters", message)
	assert.Len(t, v.Errors(), 3)

	v = run(rules, map[string]any{"title": 12.0, "completed": true})
	assert.Equal(t, []string{"title must be a string"}, v.Errors()["title"])

	v = run(rules, map[string]any{})
	message, _ = v.FirstError()
	assert.Equal(t, "title is required", message)
}

/*
TestValidator_Err verifies the AppError carries the first error and the full mapping.
*/
func TestValidator_Err(t *testing.T) {
	v := validate.New()
	ok := v.Validate(map[string]any{"name": ""}, validate.Rules(validate.Field("name", validate.Required())))
	require.False(t, ok)

	ae := apperr.As(v.Err())
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeValidation, ae.Code)
	assert.Equal(t, "name is required", ae.Message)
	assert.Equal(t, map[string][]string{"name": {"name is required"}}, ae.Details["errors"])

	// A later valid run clears earlier state.
	assert.True(t, v.Validate(map[string]any{"name": "x"}, validate.Rules(validate.Field("name", validate.Required()))))
	assert.NoError(t, v.Err())
}

/*
TestRuleSet_Only verifies partial-update rule derivation.
*/
func TestRuleSet_Only(t *testing.T) {
	rules := validate.Rules(
		validate.Field("name", validate.Required(), validate.String(), validate.NotEmpty()),
		validate.Field("description", validate.String()),
	)

	subset := rules.Only(map[string]any{"name": "x"})
	require.Len(t, subset, 1)
	assert.Equal(t, "name", subset[0].Name)
	for _, rule := range subset[0].Rules {
		assert.NotEqual(t, validate.KindRequired, rule.Kind())
	}
}

/*
TestKind_String verifies every constructor yields a named kind.
*/
func TestKind_String(t *testing.T) {
	rules := []validate.Rule{
		validate.Required(), validate.String(), validate.Boolean(), validate.Array(),
		validate.MinLength(1), validate.MaxLength(1), validate.NotEmpty(), validate.UUID(),
		validate.Datetime(), validate.Enum("a"), validate.MaxItems(1), validate.ArrayItemMaxLength(1),
	}

	seen := map[string]bool{}
	for _, rule := range rules {
		name := rule.Kind().String()
		assert.NotContains(t, name, "Kind(")
		seen[name] = true

		// Every kind is handled without panicking.
		assert.NotPanics(t, func() {
			run(validate.Rules(validate.Field("f", rule)), map[string]any{"f": "value"})
		})
	}
	assert.Len(t, seen, len(rules))
}
