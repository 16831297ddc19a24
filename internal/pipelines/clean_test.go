package pipelines

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanScript(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "all transforms in order",
			input:    "**Hello** (music plays) world (0:00 - 0:05)\n\n\nfoo",
			expected: "Hello  world \nfoo",
		},
		{
			name:     "bold marker unwraps content",
			input:    "**keep this**",
			expected: "keep this",
		},
		{
			name:     "timestamp range removed",
			input:    "intro (0:15 - 1:30) outro",
			expected: "intro  outro",
		},
		{
			name:     "plain text untouched",
			input:    "nothing to clean here",
			expected: "nothing to clean here",
		},
		{
			name:     "surrounding whitespace trimmed",
			input:    "\n\n  script body  \n\n",
			expected: "script body",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanScript(tt.input))
		})
	}
}

func TestProcessTitles(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "numbered list stripped",
			input:    "1. First Title\n2) Second Title\n3 Third Title",
			expected: []string{"First Title", "Second Title", "Third Title"},
		},
		{
			name:     "blank lines skipped",
			input:    "First\n\n\nSecond",
			expected: []string{"First", "Second"},
		},
		{
			name:     "capped at five",
			input:    "a\nb\nc\nd\ne\nf\ng",
			expected: []string{"a", "b", "c", "d", "e"},
		},
		{
			name:     "empty output",
			input:    "\n\n",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, processTitles(tt.input))
		})
	}
}
