package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text is lowercased",
			input:    "Dear Customer Please Act",
			expected: "dear customer please act",
		},
		{
			name:     "html tags are stripped",
			input:    "<p>Verify your <b>account</b></p>",
			expected: "verify your account",
		},
		{
			name:     "disallowed punctuation is removed",
			input:    "Win $1,000,000 now!!!",
			expected: "win 1000000 now",
		},
		{
			name:     "url punctuation survives",
			input:    "Visit https://example.com/path_a-b.html now",
			expected: "visit https://example.com/path_a-b.html now",
		},
		{
			name:     "fullwidth characters fold to ascii",
			input:    "ＵＲＧＥＮＴ",
			expected: "urgent",
		},
		{
			name:     "whitespace is trimmed",
			input:    "   hello world   ",
			expected: "hello world",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "symbol-only input collapses to empty",
			input:    "!!! ??? $$$",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeText(tt.input))
		})
	}
}

func TestNormalizeTextIdempotent(t *testing.T) {
	inputs := []string{
		"Click <a href='http://evil.test'>here</a> NOW!",
		"plain message with https://example.com/a",
		"ＶＥＲＩＦＹ your account！",
	}

	for _, input := range inputs {
		once := NormalizeText(input)
		assert.Equal(t, once, NormalizeText(once))
	}
}
