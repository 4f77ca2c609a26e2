package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrimLower(t *testing.T) {
	t.Run("nil slice stays nil", func(t *testing.T) {
		assert.Nil(t, DedupeAndTrimLower(nil))
	})

	t.Run("trims lowercases and dedupes preserving order", func(t *testing.T) {
		got := DedupeAndTrimLower([]string{" EN ", "vi", "en", "", "  "})
		assert.Equal(t, []string{"en", "vi"}, got)
	})

	t.Run("case-insensitive duplicates collapse", func(t *testing.T) {
		got := DedupeAndTrimLower([]string{"VI", "Vi", "vi"})
		assert.Equal(t, []string{"vi"}, got)
	})
}
