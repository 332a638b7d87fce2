package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func identity(s string) string { return s }

func TestLastDistinctTerms(t *testing.T) {
	tests := []struct {
		name     string
		urls     []string
		window   int
		expected []string
	}{
		{
			name:     "collapses immediate repeats and drops current",
			urls:     []string{"react", "react", "redux", "redux", "graphql"},
			window:   DefaultWindow,
			expected: []string{"react", "redux"},
		},
		{
			name:     "empty input",
			urls:     nil,
			window:   DefaultWindow,
			expected: []string{},
		},
		{
			name:     "single term",
			urls:     []string{"react"},
			window:   DefaultWindow,
			expected: []string{},
		},
		{
			name:     "single term repeated",
			urls:     []string{"react", "react", "react"},
			window:   DefaultWindow,
			expected: []string{},
		},
		{
			name:     "non-consecutive duplicates kept",
			urls:     []string{"react", "redux", "react"},
			window:   DefaultWindow,
			expected: []string{"react", "redux"},
		},
		{
			name:     "window limits to last six",
			urls:     []string{"a", "b", "c", "d", "e", "f", "g", "h"},
			window:   DefaultWindow,
			expected: []string{"c", "d", "e", "f", "g"},
		},
		{
			name:     "window applied after collapsing",
			urls:     []string{"a", "b", "b", "b", "c", "d", "e", "f", "f"},
			window:   DefaultWindow,
			expected: []string{"a", "b", "c", "d", "e"},
		},
		{
			name:     "custom window",
			urls:     []string{"a", "b", "c"},
			window:   2,
			expected: []string{"b"},
		},
		{
			name:     "zero window",
			urls:     []string{"a", "b", "c"},
			window:   0,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LastDistinctTerms(tt.urls, tt.window, identity)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLastDistinctTerms_UsesExtractor(t *testing.T) {
	urls := []string{
		"https://hn.algolia.com/api/v1/search?query=react&page=0",
		"https://hn.algolia.com/api/v1/search?query=react&page=1",
		"https://hn.algolia.com/api/v1/search?query=redux&page=0",
	}
	extract := func(u string) string {
		switch u {
		case urls[0], urls[1]:
			return "react"
		default:
			return "redux"
		}
	}

	// Paging through one term counts as a single search.
	assert.Equal(t, []string{"react"}, LastDistinctTerms(urls, DefaultWindow, extract))
}

func TestLastDistinctTerms_DoesNotAliasInput(t *testing.T) {
	urls := []string{"a", "b", "c"}
	got := LastDistinctTerms(urls, DefaultWindow, identity)
	got[0] = "changed"
	assert.Equal(t, "a", urls[0])
}
