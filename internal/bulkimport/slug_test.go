package bulkimport

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "General Knowledge", "general-knowledge"},
		{"punctuation collapses", "  A & B!  ", "a-b"},
		{"already a slug", "history", "history"},
		{"digits kept", "Top 10 Facts", "top-10-facts"},
		{"leading and trailing symbols", "---Science---", "science"},
		{"empty", "", ""},
		{"only symbols", "!!!", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Slugify(tc.input))
		})
	}
}

func TestSlugifyDeterministic(t *testing.T) {
	assert.Equal(t, Slugify("General Knowledge"), Slugify("General Knowledge"))
}

func TestSlugifyCapsLength(t *testing.T) {
	slug := Slugify(strings.Repeat("a", 300))
	assert.Len(t, slug, maxSlugLength)

	// The cap must not leave a dangling hyphen behind.
	slug = Slugify(strings.Repeat("ab ", 200))
	assert.LessOrEqual(t, len(slug), maxSlugLength)
	assert.False(t, strings.HasSuffix(slug, "-"))
}
