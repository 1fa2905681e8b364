package core

import (
	"time"
)

// Label classifies a triaged message.
type Label string

const (
	// LabelSafe is the whitelist short-circuit form of a legitimate verdict:
	// every URL in the message resolved to a whitelisted domain.
	LabelSafe Label = "Safe Email"
	// LabelLegitimate means no signal crossed a threshold.
	LabelLegitimate Label = "Legitimate Email"
	// LabelSuspicious means a single weak signal fired.
	LabelSuspicious Label = "Suspicious Email"
	// LabelPhishing means keyword and semantic signals agreed.
	LabelPhishing Label = "Phishing Email"
	// LabelEmpty means there was nothing to triage.
	LabelEmpty Label = "Empty"
)

// Verdict is the result of triaging a single message
type Verdict struct {
	Label       Label
	Confidence  string // integer percentage, e.g. "99%"
	Explanation string // newline-joined lines in generation order
	Score       float64
	Keywords    []string
	URLs        []string
	Domains     []string
	Degraded    bool // the semantic signal was unavailable and defaulted to zero
	AnalyzedAt  time.Time
}

// SimilarityResult carries the semantic similarity score. Degraded is set
// when the embedding engine failed and the score is the zero fallback.
type SimilarityResult struct {
	Score    float64
	Degraded bool
}
