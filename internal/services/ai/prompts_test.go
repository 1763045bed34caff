package ai

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestClip(t *testing.T) {
	t.Run("short string returned whole", func(t *testing.T) {
		assert.Equal(t, "abc", clip("abc", 10))
	})

	t.Run("long string cut to limit", func(t *testing.T) {
		got := clip(strings.Repeat("a", 20), 5)
		assert.Equal(t, "aaaaa", got)
	})

	t.Run("never splits a multi-byte rune", func(t *testing.T) {
		s := strings.Repeat("ă", 10) // 2 bytes each

		for n := 0; n <= len(s); n++ {
			got := clip(s, n)
			assert.True(t, utf8.ValidString(got), "clip(%q, %d) = %q", s, n, got)
			assert.LessOrEqual(t, len(got), n)
		}
	})
}
