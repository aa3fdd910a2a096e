package mask

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// placeholderRune fills every character position of a masked value.
const placeholderRune = "*"

// cardNumberPattern matches strings shaped like a payment card number.
var cardNumberPattern = regexp.MustCompile(`^\d{12,19}$`)

// defaultSensitiveKeys are matched as substrings of lower-cased field names.
var defaultSensitiveKeys = []string{
	"password",
	"token",
	"authorization",
	"auth",
	"ssn",
	"creditcard",
	"cardnumber",
	"cvv",
	"secret",
	"pass",
}

// SensitiveKeySet classifies field names as sensitive by case-insensitive
// substring matching.
type SensitiveKeySet struct {
	patterns []string
}

// NewSensitiveKeySet builds a set from patterns. Patterns are trimmed and
// lower-cased; empty patterns are dropped.
func NewSensitiveKeySet(patterns ...string) SensitiveKeySet {
	normalized := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		normalized = append(normalized, p)
	}
	return SensitiveKeySet{patterns: normalized}
}

// DefaultSensitiveKeys returns the key set used when none is configured.
func DefaultSensitiveKeys() SensitiveKeySet {
	return NewSensitiveKeySet(defaultSensitiveKeys...)
}

// Patterns returns a copy of the normalized patterns.
func (s SensitiveKeySet) Patterns() []string {
	out := make([]string, len(s.patterns))
	copy(out, s.patterns)
	return out
}

// Matches reports whether key contains any pattern of the set.
func (s SensitiveKeySet) Matches(key string) bool {
	lower := strings.ToLower(key)
	for _, p := range s.patterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// Mask returns a redacted copy of v.
//
// Every scalar stored under a sensitive key, and every string shaped like a
// card number, is replaced by asterisks of the same length. Containers are
// walked recursively; sequences keep their order and length. Null values and
// top-level scalars are returned unchanged. v itself is never modified.
func Mask(v Value, keys SensitiveKeySet) Value {
	switch v.kind {
	case KindMapping:
		fields := make(map[string]Value, len(v.fields))
		for k, child := range v.fields {
			fields[k] = maskChild(child, keys.Matches(k), keys)
		}
		return Value{kind: KindMapping, fields: fields}
	case KindSequence:
		items := make([]Value, len(v.items))
		for i, child := range v.items {
			items[i] = maskChild(child, false, keys)
		}
		return Value{kind: KindSequence, items: items}
	default:
		return v
	}
}

func maskChild(child Value, sensitive bool, keys SensitiveKeySet) Value {
	switch {
	case child.IsContainer():
		return Mask(child, keys)
	case child.IsNull():
		return child
	case sensitive || isCardNumber(child):
		return String(MaskString(child.text))
	default:
		return child
	}
}

func isCardNumber(v Value) bool {
	return v.kind == KindString && cardNumberPattern.MatchString(v.text)
}

// MaskString replaces every character of s with an asterisk.
func MaskString(s string) string {
	return strings.Repeat(placeholderRune, utf8.RuneCountInString(s))
}
