package core

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	// tagPattern matches HTML-like tags, which are stripped entirely.
	tagPattern = regexp.MustCompile(`<[^>]*>`)

	// disallowedPattern matches every character outside the triage charset:
	// letters, digits, whitespace and the URL-bearing punctuation :/._-
	disallowedPattern = regexp.MustCompile(`[^a-zA-Z0-9\s:/._-]`)
)

// NormalizeText canonicalizes raw message text for the triage pipeline:
// NFKC normalization, tag stripping, charset filtering, lowercasing and
// whitespace trimming. Empty or non-textual input yields an empty string.
func NormalizeText(text string) string {
	text = norm.NFKC.String(text)
	text = tagPattern.ReplaceAllString(text, "")
	text = disallowedPattern.ReplaceAllString(text, "")
	return strings.TrimSpace(strings.ToLower(text))
}
