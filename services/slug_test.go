package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple title", "My First Post", "my-first-post"},
		{"with punctuation", "Hello, World!", "hello-world"},
		{"with numbers", "Top 10 Tips", "top-10-tips"},
		{"with accents", "Café résumé", "cafe-resume"},
		{"german umlauts", "Über München", "uber-munchen"},
		{"multiple spaces", "Hello   World", "hello-world"},
		{"leading and trailing", "  -Hello World-  ", "hello-world"},
		{"underscores", "snake_case_title", "snake-case-title"},
		{"only symbols", "!@#$%", "post"},
		{"empty", "", "post"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Slugify(tt.input)
			assert.Equal(t, tt.expected, got)
			assert.True(t, IsValidSlug(got), "Slugify(%q) = %q is not a valid slug", tt.input, got)
		})
	}
}

func TestNewSlug(t *testing.T) {
	slug, err := NewSlug("My First Post")
	require.NoError(t, err)

	prefix, suffix, found := strings.Cut(strings.TrimPrefix(slug, "my-first-"), "-")
	require.True(t, found, "slug %q has no suffix separator", slug)
	assert.Equal(t, "post", prefix)
	assert.Len(t, suffix, slugSuffixLength)
	for _, r := range suffix {
		assert.Contains(t, slugAlphabet, string(r))
	}
	assert.True(t, IsValidSlug(slug))
}

func TestNewSlug_SameTitleDiffers(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		slug, err := NewSlug("Same Title")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(slug, "same-title-"))
		assert.False(t, seen[slug], "duplicate slug %q", slug)
		seen[slug] = true
	}
}

func TestIsValidSlug(t *testing.T) {
	assert.True(t, IsValidSlug("hello-world-a1b2c3"))
	assert.False(t, IsValidSlug(""))
	assert.False(t, IsValidSlug("-hello"))
	assert.False(t, IsValidSlug("hello-"))
	assert.False(t, IsValidSlug("hello--world"))
	assert.False(t, IsValidSlug("Hello"))
	assert.False(t, IsValidSlug("hello world"))
}
