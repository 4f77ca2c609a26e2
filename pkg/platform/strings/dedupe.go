// Package strings provides string slice utilities shared across modules.
package strings

import (
	"strings"
)

// DedupeAndTrimLower removes duplicates and empty strings from a slice,
// trimming whitespace and lowercasing each element. Order is preserved.
// Used for normalizing language code lists from configuration.
func DedupeAndTrimLower(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		normalized := strings.ToLower(strings.TrimSpace(v))
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; !ok {
			seen[normalized] = struct{}{}
			result = append(result, normalized)
		}
	}

	return result
}
