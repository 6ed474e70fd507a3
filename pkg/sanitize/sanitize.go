package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

// Text strips markup from user-supplied prose (bios, descriptions, comments)
// and normalizes surrounding whitespace. Entities are unescaped so the stored
// value is plain text.
func Text(s string) string {
	if s == "" {
		return s
	}
	cleaned := html.UnescapeString(policy.Sanitize(s))
	return strings.TrimSpace(cleaned)
}

// TextPtr applies Text to an optional value.
func TextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := Text(*s)
	return &v
}

// List sanitizes each element, trims it, and drops blanks.
func List(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if v := Text(item); v != "" {
			out = append(out, v)
		}
	}
	return out
}
