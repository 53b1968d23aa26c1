package utils

import (
	"regexp"
	"strings"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9-]+`)
	slugHyphenRuns   = regexp.MustCompile(`-+`)
	slugPattern      = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// GenerateSlug turns a display name into a URL-safe slug:
// "Summer Sale!" -> "summer-sale".
func GenerateSlug(input string) string {
	lower := strings.ToLower(input)
	hyphenated := strings.ReplaceAll(lower, " ", "-")
	cleaned := slugInvalidChars.ReplaceAllString(hyphenated, "")
	normalized := slugHyphenRuns.ReplaceAllString(cleaned, "-")
	return strings.Trim(normalized, "-")
}

// IsValidSlug reports whether s is already a well-formed slug.
func IsValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}
