package core

import (
	"regexp"
	"strings"
)

// urlPattern matches http(s) URLs and bare www hosts in normalized text.
var urlPattern = regexp.MustCompile(`(?i)(https?://[^\s<>"']+|www\.[^\s<>"']+)`)

// trailingPunct is stripped repeatedly from the right of every match.
const trailingPunct = `.,;!?)"'`

// ExtractURLs returns the URL-like substrings of normalized text in
// first-occurrence order. Duplicates are preserved.
func ExtractURLs(normalizedText string) []string {
	matches := urlPattern.FindAllString(normalizedText, -1)
	urls := make([]string, 0, len(matches))
	for _, m := range matches {
		urls = append(urls, strings.TrimRight(m, trailingPunct))
	}
	return urls
}
