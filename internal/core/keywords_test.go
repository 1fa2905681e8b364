package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchKeywords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "no keywords",
			input:    "lunch at noon tomorrow",
			expected: []string{},
		},
		{
			name:     "single keyword",
			input:    "please verify the numbers",
			expected: []string{"verify"},
		},
		{
			name:     "hits reported in vocabulary order not text order",
			input:    "your payment is blocked, act urgent",
			// "blocked" also contains "locked" as a substring
			expected: []string{"urgent", "payment", "locked", "blocked"},
		},
		{
			name:     "substring matches count",
			input:    "unverified accounts are reviewed",
			expected: []string{"account"},
		},
		{
			name:     "multi-word keyword",
			input:    "limited time offer, act now",
			expected: []string{"limited time"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MatchKeywords(tt.input))
		})
	}
}
