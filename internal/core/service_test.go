package core

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// stubWhitelist contains a fixed set of domains
type stubWhitelist struct {
	domains map[string]struct{}
}

func newStubWhitelist(domains ...string) *stubWhitelist {
	m := make(map[string]struct{}, len(domains))
	for _, d := range domains {
		m[d] = struct{}{}
	}
	return &stubWhitelist{domains: m}
}

func (w *stubWhitelist) Contains(domain string) bool {
	_, ok := w.domains[domain]
	return ok
}

func (w *stubWhitelist) Size() int {
	return len(w.domains)
}

// stubScorer returns a fixed similarity result, sidestepping float32
// rounding so threshold boundaries can be tested exactly
type stubScorer struct {
	result SimilarityResult
}

func (s *stubScorer) Score(ctx context.Context, normalizedText string, urls []string) SimilarityResult {
	return s.result
}

func newService(whitelist WhitelistStore, score float64) *TriageService {
	return NewTriageService(
		whitelist,
		&stubScorer{result: SimilarityResult{Score: score}},
		zap.NewNop(),
		DefaultPhishingSimilarity,
		DefaultSuspiciousSimilarity,
	)
}

func TestAnalyzeEmptyMessage(t *testing.T) {
	svc := newService(newStubWhitelist(), 0.0)

	tests := []struct {
		name  string
		input string
	}{
		{name: "empty string", input: ""},
		{name: "whitespace only", input: "   \n\t  "},
		{name: "symbols normalize to nothing", input: "!!! $$$ ???"},
		{name: "tags normalize to nothing", input: "<div><br/></div>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := svc.Analyze(context.Background(), tt.input)
			assert.Equal(t, LabelEmpty, verdict.Label)
			assert.Equal(t, "0%", verdict.Confidence)
			assert.Equal(t, "No text provided. Please paste the email content.", verdict.Explanation)
		})
	}
}

func TestAnalyzeWhitelistShortCircuit(t *testing.T) {
	svc := newService(newStubWhitelist("gmail.com"), 0.9)

	// Subdomain resolves to the registrable domain; despite the urgent
	// keyword and a high similarity score, the verdict short-circuits
	verdict := svc.Analyze(context.Background(),
		"URGENT verify at https://mail.gmail.com/account/reset")

	assert.Equal(t, LabelSafe, verdict.Label)
	assert.Equal(t, "99%", verdict.Confidence)
	assert.Contains(t, verdict.Explanation, "All domains are whitelisted: gmail.com")
	assert.Empty(t, verdict.Keywords)
	assert.Equal(t, []string{"https://mail.gmail.com/account/reset"}, verdict.URLs)
	assert.Equal(t, []string{"gmail.com"}, verdict.Domains)
}

func TestAnalyzeMixedDomainsReachFusion(t *testing.T) {
	svc := newService(newStubWhitelist("gmail.com"), 0.9)

	verdict := svc.Analyze(context.Background(),
		"urgent: verify via https://gmail.com/x or https://evil.test/y")

	assert.Equal(t, LabelPhishing, verdict.Label)
	assert.Contains(t, verdict.Explanation, "Non-whitelisted domains: evil.test")
	assert.NotContains(t, verdict.Explanation, "All domains are whitelisted")
}

func TestAnalyzeFusion(t *testing.T) {
	tests := []struct {
		name               string
		message            string
		score              float64
		expectedLabel      Label
		expectedConfidence string
	}{
		{
			name:               "keywords and high similarity is phishing",
			message:            "urgent verify your account at https://evil.test/login",
			score:              0.9,
			expectedLabel:      LabelPhishing,
			expectedConfidence: "90%",
		},
		{
			name:               "phishing confidence floor",
			message:            "urgent verify at https://evil.test",
			score:              0.5,
			expectedLabel:      LabelPhishing,
			expectedConfidence: "80%",
		},
		{
			name:               "keywords alone is suspicious",
			message:            "please reset your password before friday",
			score:              0.0,
			expectedLabel:      LabelSuspicious,
			expectedConfidence: "60%",
		},
		{
			name:               "high similarity alone is suspicious",
			message:            "newsletter at https://news.test/issue",
			score:              0.7,
			expectedLabel:      LabelSuspicious,
			expectedConfidence: "70%",
		},
		{
			name:               "score exactly at phishing threshold stays suspicious",
			message:            "urgent verify at https://evil.test",
			score:              0.4,
			expectedLabel:      LabelSuspicious,
			expectedConfidence: "60%",
		},
		{
			name:               "score exactly at suspicious threshold stays legitimate",
			message:            "see the agenda at https://ok.test/agenda",
			score:              0.6,
			expectedLabel:      LabelLegitimate,
			expectedConfidence: "40%",
		},
		{
			name:               "no signals is legitimate",
			message:            "lunch on tuesday works for me",
			score:              0.0,
			expectedLabel:      LabelLegitimate,
			expectedConfidence: "100%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(newStubWhitelist(), tt.score)
			verdict := svc.Analyze(context.Background(), tt.message)
			assert.Equal(t, tt.expectedLabel, verdict.Label)
			assert.Equal(t, tt.expectedConfidence, verdict.Confidence)
		})
	}
}

func TestAnalyzeExplanationLines(t *testing.T) {
	svc := newService(newStubWhitelist(), 0.75)

	verdict := svc.Analyze(context.Background(),
		"your account is blocked, login at https://evil.test/login immediately")

	lines := strings.Split(verdict.Explanation, "\n")
	assert.Equal(t, []string{
		"URLs found: https://evil.test/login",
		"Non-whitelisted domains: evil.test",
		"Suspicious keywords: account, login, immediately, locked, blocked",
		"Semantic similarity score: 0.75",
	}, lines)
}

func TestAnalyzeNoURLs(t *testing.T) {
	svc := newService(newStubWhitelist(), 0.0)

	verdict := svc.Analyze(context.Background(), "quarterly numbers look fine")

	assert.Equal(t, LabelLegitimate, verdict.Label)
	assert.Contains(t, verdict.Explanation, "No URLs detected.")
	assert.Empty(t, verdict.URLs)
}

func TestAnalyzeDegradedSimilarity(t *testing.T) {
	svc := NewTriageService(
		newStubWhitelist(),
		&stubScorer{result: SimilarityResult{Score: 0.0, Degraded: true}},
		zap.NewNop(),
		DefaultPhishingSimilarity,
		DefaultSuspiciousSimilarity,
	)

	// Keywords still drive the verdict when the embedding signal is out
	verdict := svc.Analyze(context.Background(), "urgent: confirm your password")

	assert.Equal(t, LabelSuspicious, verdict.Label)
	assert.Equal(t, "60%", verdict.Confidence)
	assert.True(t, verdict.Degraded)
}
