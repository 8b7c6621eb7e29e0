package cmd

import (
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestPadToWidth(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{
			name:     "no padding when width is 0",
			input:    "Hello",
			width:    0,
			expected: "Hello",
		},
		{
			name:     "pad short text with spaces",
			input:    "Hi",
			width:    10,
			expected: "Hi        ",
		},
		{
			name:     "exact width unchanged",
			input:    "Hello",
			width:    5,
			expected: "Hello",
		},
		{
			name:     "truncate long text with ellipsis",
			input:    "This is a very long string that needs truncation",
			width:    20,
			expected: "This is a very lo...",
		},
		{
			name:     "handle unicode characters",
			input:    "日本語",
			width:    10,
			expected: "日本語    ",
		},
		{
			name:     "truncate wide text pads to width",
			input:    "日本語とても長い",
			width:    10,
			expected: "日本語... ",
		},
		{
			name:     "minimum width for truncation",
			input:    "Hello",
			width:    3,
			expected: "...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := padToWidth(tt.input, tt.width)
			if result != tt.expected {
				t.Errorf("padToWidth(%q, %d) = %q, expected %q",
					tt.input, tt.width, result, tt.expected)
			}

			if tt.width > 0 {
				if w := runewidth.StringWidth(result); w != tt.width {
					t.Errorf("padToWidth(%q, %d) produced width %d, expected %d",
						tt.input, tt.width, w, tt.width)
				}
			}
		})
	}
}

func TestColumnWidth(t *testing.T) {
	tests := []struct {
		name     string
		values   []string
		header   string
		max      int
		expected int
	}{
		{name: "header wider", values: []string{"a"}, header: "NAME", expected: 4},
		{name: "value wider", values: []string{"hip-hop", "rock"}, header: "ID", expected: 7},
		{name: "capped", values: []string{"a very long genre identifier"}, header: "ID", max: 10, expected: 10},
		{name: "wide runes", values: []string{"日本"}, header: "ID", expected: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := columnWidth(tt.values, tt.header, tt.max); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}
