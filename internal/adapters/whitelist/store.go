package whitelist

import (
	"strings"

	"go.uber.org/zap"
)

// Store is an immutable set of known-safe registrable domains. It is
// populated once before any triage call and may be shared across
// goroutines without synchronization.
type Store struct {
	domains map[string]struct{}
}

// NewStore creates a whitelist store from a list of domains. Entries are
// lowercased and trimmed; empties are dropped.
func NewStore(domains []string, logger *zap.Logger) *Store {
	set := make(map[string]struct{}, len(domains))
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			set[d] = struct{}{}
		}
	}

	if logger != nil {
		logger.Info("Initialized domain whitelist", zap.Int("domain_count", len(set)))
	}

	return &Store{domains: set}
}

// Contains reports whether the registrable domain is whitelisted
func (s *Store) Contains(domain string) bool {
	_, ok := s.domains[strings.ToLower(domain)]
	return ok
}

// Size returns the number of whitelisted domains
func (s *Store) Size() int {
	return len(s.domains)
}
