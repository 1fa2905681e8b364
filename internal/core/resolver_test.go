package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveDomain(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		expectedDomain string
		expectResolved bool
	}{
		{
			name:           "simple https url",
			input:          "https://example.com/login",
			expectedDomain: "example.com",
			expectResolved: true,
		},
		{
			name:           "subdomains collapse to registrable domain",
			input:          "https://mail.accounts.gmail.com/inbox",
			expectedDomain: "gmail.com",
			expectResolved: true,
		},
		{
			name:           "bare www host without scheme",
			input:          "www.example.com",
			expectedDomain: "example.com",
			expectResolved: true,
		},
		{
			name:           "multi-label public suffix",
			input:          "https://shop.example.co.uk/item",
			expectedDomain: "example.co.uk",
			expectResolved: true,
		},
		{
			name:           "trailing dot on host",
			input:          "https://example.com./x",
			expectedDomain: "example.com",
			expectResolved: true,
		},
		{
			name:           "unresolvable falls back to raw url",
			input:          "https:///nohost",
			expectedDomain: "https:///nohost",
			expectResolved: false,
		},
		{
			name:           "empty input",
			input:          "",
			expectedDomain: "",
			expectResolved: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			domain, resolved := ResolveDomain(tt.input)
			assert.Equal(t, tt.expectedDomain, domain)
			assert.Equal(t, tt.expectResolved, resolved)
		})
	}
}
