// Package nameutil maps identifier-style symbol names onto the dashed
// names used on the command line.
package nameutil

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

const (
	// DefaultSeparatorIn is the separator expected in code identifiers.
	DefaultSeparatorIn = "_"
	// DefaultSeparatorOut is the separator used in CLI names.
	DefaultSeparatorOut = "-"
)

// InvalidNameError is returned when a name normalizes to nothing.
type InvalidNameError struct {
	Name string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid name %q", e.Name)
}

// Normalize turns an identifier into a user-facing command name:
// runs of underscores become a single dash and decorating
// underscores are stripped ("__special__" -> "special").
func Normalize(name string) (string, error) {
	return NormalizeWith(name, DefaultSeparatorIn, DefaultSeparatorOut)
}

// NormalizeWith is Normalize with explicit separators.
func NormalizeWith(name, sepIn, sepOut string) (string, error) {
	s := strings.TrimSpace(name)

	re := regexp.MustCompile(regexp.QuoteMeta(sepIn) + "+")
	s = re.ReplaceAllString(s, sepOut)
	s = strings.TrimPrefix(s, sepOut)
	s = strings.TrimSuffix(s, sepOut)

	if s == "" {
		return "", &InvalidNameError{Name: name}
	}
	return s, nil
}

// NormalizeClassName turns a camel-case type name into a dashed name
// ("SuperCommand" -> "super-command"). Underscores are swapped first,
// the same way Normalize does it.
func NormalizeClassName(name string) (string, error) {
	s, err := Normalize(name)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, r := range s {
		if unicode.IsUpper(r) && b.Len() > 0 {
			b.WriteByte('-')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String(), nil
}
