package utils

import (
	"regexp"
	"strings"
)

var (
	// Runs of whitespace and underscores become single hyphens.
	wordSeparatorRe = regexp.MustCompile(`[\s_]+`)
	// Anything that is not a-z, 0-9 or a hyphen is dropped.
	nonAlphanumericRe = regexp.MustCompile(`[^a-z0-9-]+`)
	// Consecutive hyphens collapse to one.
	multipleHyphenRe = regexp.MustCompile(`-+`)
)

// GenerateSlug converts a display name into a lowercase URL-safe token.
//
//	"The Left Hand of Darkness" → "the-left-hand-of-darkness"
//	"C++ for  Dummies!"         → "c-for-dummies"
func GenerateSlug(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = wordSeparatorRe.ReplaceAllString(s, "-")
	s = nonAlphanumericRe.ReplaceAllString(s, "")
	s = multipleHyphenRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
