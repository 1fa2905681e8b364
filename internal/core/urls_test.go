package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractURLs(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "no urls",
			input:    "please review the attached invoice",
			expected: []string{},
		},
		{
			name:     "http url",
			input:    "click http://evil.test/login now",
			expected: []string{"http://evil.test/login"},
		},
		{
			name:     "https url",
			input:    "see https://example.com/a/b",
			expected: []string{"https://example.com/a/b"},
		},
		{
			name:     "bare www host",
			input:    "go to www.example.com today",
			expected: []string{"www.example.com"},
		},
		{
			name:     "trailing punctuation stripped",
			input:    "visit https://example.com/path.",
			expected: []string{"https://example.com/path"},
		},
		{
			name:     "multiple trailing punctuation stripped",
			input:    "really https://example.com/path...",
			expected: []string{"https://example.com/path"},
		},
		{
			name:     "first occurrence order preserved",
			input:    "first https://a.test then www.b.test and https://c.test",
			expected: []string{"https://a.test", "www.b.test", "https://c.test"},
		},
		{
			name:     "duplicates preserved",
			input:    "https://a.test and again https://a.test",
			expected: []string{"https://a.test", "https://a.test"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractURLs(tt.input))
		})
	}
}
