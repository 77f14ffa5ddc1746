package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: nil,
		},
		{
			name:     "single value",
			input:    "http://localhost:3000",
			expected: []string{"http://localhost:3000"},
		},
		{
			name:     "two values",
			input:    "http://localhost:3000, https://app.example.com",
			expected: []string{"http://localhost:3000", "https://app.example.com"},
		},
		{
			name:     "varied spacing",
			input:    "a,  b , c",
			expected: []string{"a", "b", "c"},
		},
		{
			name:     "no spaces after comma",
			input:    "a,b",
			expected: []string{"a", "b"},
		},
		{
			name:     "trailing comma",
			input:    "a,",
			expected: []string{"a"},
		},
		{
			name:     "leading comma",
			input:    ",b",
			expected: []string{"b"},
		},
		{
			name:     "only spaces",
			input:    "   ",
			expected: nil,
		},
		{
			name:     "comma only",
			input:    ",",
			expected: nil,
		},
		{
			name:     "multiple commas",
			input:    ",,a,,b,,",
			expected: []string{"a", "b"},
		},
		{
			name:     "internal spaces preserved",
			input:    "value one, value two",
			expected: []string{"value one", "value two"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseCSV(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseCSV_PreservesInput(t *testing.T) {
	// Verify that the function doesn't modify the input string
	input := "http://localhost:3000, https://app.example.com"
	originalInput := input

	_ = ParseCSV(input)

	assert.Equal(t, originalInput, input, "input should not be modified")
}
