// Package slugify derives URL-safe identifiers from display names.
package slugify

import (
	"regexp"
	"strings"
)

var (
	// Matches characters that never appear in a slug (anything outside
	// lowercase alphanumerics, whitespace and hyphens).
	invalidCharRe = regexp.MustCompile(`[^a-z0-9\s-]`)
	// Matches runs of whitespace and hyphens (collapsed to a single hyphen).
	separatorRunRe = regexp.MustCompile(`[\s-]+`)
)

// Slugify converts a display name to its canonical URL slug.
//
// Rules:
//  1. Lowercase and trim
//  2. Strip characters outside [a-z0-9\s-]
//  3. Collapse whitespace/hyphen runs into single hyphens
//  4. Trim leading/trailing hyphens
//
// The function is pure and deterministic. Input with no slug-safe characters
// yields ""; callers must treat an empty slug as a validation failure.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = invalidCharRe.ReplaceAllString(s, "")
	s = separatorRunRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
