// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate

import "fmt"

// Kind enumerates the closed set of rule kinds understood by [Validator].
type Kind int

const (
	KindRequired Kind = iota + 1
	KindString
	KindBoolean
	KindArray
	KindMinLength
	KindMaxLength
	KindNotEmpty
	KindUUID
	KindDatetime
	KindEnum
	KindMaxItems
	KindArrayItemMaxLength
)

var kindNames = map[Kind]string{
	KindRequired:           "required",
	KindString:             "string",
	KindBoolean:            "boolean",
	KindArray:              "array",
	KindMinLength:          "minLength",
	KindMaxLength:          "maxLength",
	KindNotEmpty:           "notEmpty",
	KindUUID:               "uuid",
	KindDatetime:           "datetime",
	KindEnum:               "enum",
	KindMaxItems:           "maxItems",
	KindArrayItemMaxLength: "arrayItemMaxLength",
}

// String returns the rule's conventional name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Rule is one check applied to a field. Rules are built only through the
// constructors below, so every Rule carries a known Kind and its payload.
type Rule struct {
	kind    Kind
	limit   int
	allowed []any
}

// Kind reports which check the rule performs.
func (r Rule) Kind() Kind { return r.kind }

// Required fails when the value is absent, null, or the empty string.
func Required() Rule { return Rule{kind: KindRequired} }

// String fails when a present value is not a string.
func String() Rule { return Rule{kind: KindString} }

// Boolean fails when a present value is not a boolean.
func Boolean() Rule { return Rule{kind: KindBoolean} }

// Array fails when a present value is not a list.
func Array() Rule { return Rule{kind: KindArray} }

// MinLength fails when a string value has fewer than n characters.
func MinLength(n int) Rule { return Rule{kind: KindMinLength, limit: n} }

// MaxLength fails when a string value has more than n characters.
func MaxLength(n int) Rule { return Rule{kind: KindMaxLength, limit: n} }

// NotEmpty fails when a string value is blank after trimming.
func NotEmpty() Rule { return Rule{kind: KindNotEmpty} }

// UUID fails when a present value is not a version 4 UUID.
func UUID() Rule { return Rule{kind: KindUUID} }

// Datetime fails when a present value is not an RFC 3339 timestamp.
func Datetime() Rule { return Rule{kind: KindDatetime} }

// Enum fails when a present value is not identical (same type and value) to
// one of the allowed values.
func Enum(allowed ...any) Rule { return Rule{kind: KindEnum, allowed: allowed} }

// MaxItems fails when a list value has more than n elements.
func MaxItems(n int) Rule { return Rule{kind: KindMaxItems, limit: n} }

// ArrayItemMaxLength fails when any string element of a list is longer than n characters.
func ArrayItemMaxLength(n int) Rule { return Rule{kind: KindArrayItemMaxLength, limit: n} }

// FieldRules binds an ordered list of rules to one field.
type FieldRules struct {
	Name  string
	Rules []Rule
}

// Field declares the rules for a single field, evaluated in the given order.
func Field(name string, rules ...Rule) FieldRules {
	return FieldRules{Name: name, Rules: rules}
}

// RuleSet is an ordered list of field declarations. Its order defines which
// error is reported by [Validator.FirstError].
type RuleSet []FieldRules

// Rules builds a [RuleSet] from field declarations.
func Rules(fields ...FieldRules) RuleSet {
	return RuleSet(fields)
}

// Only returns the subset of the rule set whose fields are present in data,
// with Required rules removed. It backs partial updates.
func (set RuleSet) Only(data map[string]any) RuleSet {
	subset := make(RuleSet, 0, len(set))
	for _, field := range set {
		if _, present := data[field.Name]; !present {
			continue
		}

		rules := make([]Rule, 0, len(field.Rules))
		for _, rule := range field.Rules {
			if rule.kind != KindRequired {
				rules = append(rules, rule)
			}
		}
		subset = append(subset, FieldRules{Name: field.Name, Rules: rules})
	}
	return subset
}
