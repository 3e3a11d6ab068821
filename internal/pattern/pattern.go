// Package pattern evaluates argument values against a closed choice
// list. Values may use a small pattern language: "literal", "!literal"
// (negation), "~regex" and "!~regex" (negated regex).
package pattern

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Matches reports whether value is acceptable given choices.
//
// A value carrying a regex form ("~re" or "!~re") is accepted exactly
// when the expression compiles; whether the negation ultimately rejects
// is decided by the caller, not here. A negation of a literal ("!x") is
// accepted only when x is itself a member of choices. A plain literal is
// a straight membership test. Both sides of a membership test are
// compared as strings.
func Matches(value string, choices []string) bool {
	switch {
	case strings.HasPrefix(value, "!~"):
		_, err := regexp.Compile(value[2:])
		return err == nil

	case strings.HasPrefix(value, "~"):
		_, err := regexp.Compile(value[1:])
		return err == nil

	case strings.HasPrefix(value, "!"):
		return contains(choices, value[1:])

	default:
		return contains(choices, value)
	}
}

// HasPatternPrefix reports whether value uses one of the pattern forms
// rather than being a plain literal.
func HasPatternPrefix(value string) bool {
	return strings.HasPrefix(value, "!") || strings.HasPrefix(value, "~")
}

func contains(choices []string, value string) bool {
	for _, c := range choices {
		if c == value {
			return true
		}
	}
	return false
}

// Stringify renders a choice value the way it would be typed on the
// command line. Whole floats keep a trailing ".0" so declared float
// choices round-trip ("3.0" stays matchable).
func Stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		s := strconv.FormatFloat(t, 'f', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s
	case float32:
		return Stringify(float64(t))
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Choices builds a string choice list from heterogeneous literal values.
func Choices(vals ...any) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = Stringify(v)
	}
	return out
}
