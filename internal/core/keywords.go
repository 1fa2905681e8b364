package core

import (
	"strings"
)

// SuspiciousKeywords is the fixed triage vocabulary. Order matters: keyword
// hits are reported in vocabulary order, not text order.
var SuspiciousKeywords = []string{
	"urgent", "verify", "password", "click", "confirm", "account", "login",
	"security", "reset", "bank", "otp", "update", "alert", "access",
	"limited time", "immediately", "payment", "refund", "locked", "blocked",
}

// MatchKeywords returns the vocabulary entries occurring as substrings of
// the normalized text, in vocabulary order.
func MatchKeywords(normalizedText string) []string {
	hits := make([]string, 0)
	for _, kw := range SuspiciousKeywords {
		if strings.Contains(normalizedText, kw) {
			hits = append(hits, kw)
		}
	}
	return hits
}
