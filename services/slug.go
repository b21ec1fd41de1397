package services

import (
	"crypto/rand"
	"math/big"
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

const (
	slugSuffixLength = 6
	slugAlphabet     = "0123456789abcdefghijklmnopqrstuvwxyz"
	// fallbackSlug is used when a title has no transliterable characters.
	fallbackSlug = "post"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a title to a lower-case, hyphen-separated URL segment.
// Non-Latin scripts are transliterated first, so "Über München" becomes
// "uber-munchen".
func Slugify(title string) string {
	s := strings.ToLower(unidecode.Unidecode(title))
	s = nonSlugChars.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return fallbackSlug
	}
	return s
}

// NewSlug returns Slugify(title) followed by a random base36 suffix.
func NewSlug(title string) (string, error) {
	suffix, err := randomBase36(slugSuffixLength)
	if err != nil {
		return "", err
	}
	return Slugify(title) + "-" + suffix, nil
}

func randomBase36(n int) (string, error) {
	var sb strings.Builder
	sb.Grow(n)
	max := big.NewInt(int64(len(slugAlphabet)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		sb.WriteByte(slugAlphabet[idx.Int64()])
	}
	return sb.String(), nil
}

// IsValidSlug reports whether s could have been produced by NewSlug.
func IsValidSlug(s string) bool {
	if s == "" || strings.HasPrefix(s, "-") || strings.HasSuffix(s, "-") || strings.Contains(s, "--") {
		return false
	}
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return false
		}
	}
	return true
}
