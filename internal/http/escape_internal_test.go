package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		target   string
		expected string
	}{
		{
			name:     "already encoded query",
			target:   "search/works/?limit=10&offset=0&q=%20AND%20publisher=OJS",
			expected: "search/works/?limit=10&offset=0&q=%20AND%20publisher=OJS",
		},
		{
			name:     "space in value",
			target:   "search/works/?&q=%20AND%20title:machine learning",
			expected: "search/works/?&q=%20AND%20title:machine%20learning",
		},
		{
			name:     "fragment marker in value",
			target:   "search/works/?&q=%20AND%20doi=10.1/a#b",
			expected: "search/works/?&q=%20AND%20doi=10.1/a%23b",
		},
		{
			name:     "comparison operators and quotes",
			target:   `search/works/?&q=%20OR%20citationCount>20%20AND%20title:"x"`,
			expected: "search/works/?&q=%20OR%20citationCount%3E20%20AND%20title:%22x%22",
		},
		{
			name:     "lone percent",
			target:   "search/works/?&q=%20AND%20title:100%",
			expected: "search/works/?&q=%20AND%20title:100%25",
		},
		{
			name:     "question mark inside query",
			target:   "search/works/?&q=%20AND%20title:why?",
			expected: "search/works/?&q=%20AND%20title:why?",
		},
		{
			name:     "path with space",
			target:   "journals/issn:1234 5678",
			expected: "journals/issn:1234%205678",
		},
		{
			name:     "non-ascii",
			target:   "search/works/?&q=%20AND%20title:é",
			expected: "search/works/?&q=%20AND%20title:%C3%A9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, escapeTarget(tt.target))
		})
	}
}
