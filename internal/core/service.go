package core

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Default fusion thresholds. Both comparisons are strict: a score exactly
// at a threshold falls to the lower-severity branch.
const (
	DefaultPhishingSimilarity   = 0.4
	DefaultSuspiciousSimilarity = 0.6
)

const emptyExplanation = "No text provided. Please paste the email content."

// TriageService is the core phishing triage pipeline: normalization, URL
// and domain extraction, whitelist lookup, keyword matching, semantic
// similarity scoring and signal fusion.
//
// When every URL in a message resolves to a whitelisted domain the verdict
// short-circuits to Safe without consulting the keyword or semantic
// signals. A message that spoofs a whitelisted domain in display text
// while linking elsewhere therefore still reaches signal fusion, but the
// inverse (whitelisted link, hostile text) does not; that is a deliberate
// policy tradeoff, kept as published.
type TriageService struct {
	whitelist           WhitelistStore
	scorer              SimilarityScorer
	logger              *zap.Logger
	phishingThreshold   float64
	suspiciousThreshold float64
}

// NewTriageService creates a new triage service
func NewTriageService(
	whitelist WhitelistStore,
	scorer SimilarityScorer,
	logger *zap.Logger,
	phishingThreshold float64,
	suspiciousThreshold float64,
) *TriageService {
	return &TriageService{
		whitelist:           whitelist,
		scorer:              scorer,
		logger:              logger,
		phishingThreshold:   phishingThreshold,
		suspiciousThreshold: suspiciousThreshold,
	}
}

// Analyze triages a block of message text and returns a verdict. It never
// returns an error: every defined failure path resolves to a valid Verdict.
func (s *TriageService) Analyze(ctx context.Context, message string) *Verdict {
	normalized := NormalizeText(message)
	if normalized == "" {
		return &Verdict{
			Label:       LabelEmpty,
			Confidence:  "0%",
			Explanation: emptyExplanation,
			AnalyzedAt:  time.Now(),
		}
	}

	urls := ExtractURLs(normalized)
	domains := make([]string, 0, len(urls))
	safeHits := make([]string, 0, len(urls))
	nonSafeHits := make([]string, 0, len(urls))
	for _, u := range urls {
		domain, resolved := ResolveDomain(u)
		if !resolved {
			s.logger.Debug("Domain resolution fell back to raw URL", zap.String("url", u))
		}
		domains = append(domains, domain)
		if s.whitelist.Contains(domain) {
			safeHits = append(safeHits, domain)
		} else {
			nonSafeHits = append(nonSafeHits, domain)
		}
	}

	lines := make([]string, 0, 4)
	if len(urls) > 0 {
		lines = append(lines, "URLs found: "+strings.Join(urls, ", "))
		if len(safeHits) > 0 && len(nonSafeHits) == 0 {
			s.logger.Info("All domains whitelisted, short-circuiting",
				zap.Strings("domains", safeHits))
			return &Verdict{
				Label:       LabelSafe,
				Confidence:  "99%",
				Explanation: "All domains are whitelisted: " + strings.Join(safeHits, ", "),
				URLs:        urls,
				Domains:     domains,
				AnalyzedAt:  time.Now(),
			}
		}
		if len(nonSafeHits) > 0 {
			lines = append(lines, "Non-whitelisted domains: "+strings.Join(nonSafeHits, ", "))
		}
	} else {
		lines = append(lines, "No URLs detected.")
	}

	similarity := s.scorer.Score(ctx, normalized, urls)

	hits := MatchKeywords(normalized)
	if len(hits) > 0 {
		lines = append(lines, "Suspicious keywords: "+strings.Join(hits, ", "))
	}

	var label Label
	var confidence int
	switch {
	case len(hits) > 0 && similarity.Score > s.phishingThreshold:
		label = LabelPhishing
		confidence = int(math.Max(similarity.Score, 0.8) * 100)
	case len(hits) > 0 || similarity.Score > s.suspiciousThreshold:
		label = LabelSuspicious
		confidence = int(math.Max(similarity.Score, 0.6) * 100)
	default:
		label = LabelLegitimate
		confidence = int((1 - similarity.Score) * 100)
	}

	lines = append(lines, fmt.Sprintf("Semantic similarity score: %.2f", similarity.Score))

	s.logger.Info("Message triaged",
		zap.String("label", string(label)),
		zap.Int("confidence", confidence),
		zap.Float64("similarity", similarity.Score),
		zap.Int("url_count", len(urls)),
		zap.Int("keyword_hits", len(hits)),
		zap.Bool("degraded", similarity.Degraded))

	return &Verdict{
		Label:       label,
		Confidence:  fmt.Sprintf("%d%%", confidence),
		Explanation: strings.Join(lines, "\n"),
		Score:       similarity.Score,
		Keywords:    hits,
		URLs:        urls,
		Domains:     domains,
		Degraded:    similarity.Degraded,
		AnalyzedAt:  time.Now(),
	}
}
