package services

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// ugcPolicy allows the markup a rich-text editor produces, including its
// class names and a small set of inline styles, and strips scripts, event
// handlers and javascript: URLs.
var ugcPolicy = newUGCPolicy()

func newUGCPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowStyling()
	p.AllowStyles("text-align", "color", "background-color", "font-weight", "font-style", "text-decoration").Globally()
	return p
}

// SanitizeHTML cleans author-supplied post content before it is stored.
func SanitizeHTML(content string) string {
	return strings.TrimSpace(ugcPolicy.Sanitize(content))
}

// NormalizeTags trims every tag, drops empty ones and removes duplicates while
// keeping the order the author chose.
func NormalizeTags(tags []string) []string {
	if tags == nil {
		return nil
	}

	seen := make(map[string]bool, len(tags))
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		result = append(result, tag)
	}
	return result
}
