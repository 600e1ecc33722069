package summarizer

import (
	"strings"
	"testing"
)

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{"empty", "", 0},
		{"under one token", "abc", 0},
		{"exactly one token", "abcd", 1},
		{"four hundred chars", strings.Repeat("A", 400), 100},
		{"integer division", strings.Repeat("A", 403), 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateTokens(tt.text); got != tt.expected {
				t.Errorf("EstimateTokens(%q) = %d, expected %d", tt.text, got, tt.expected)
			}
		})
	}
}

func TestEstimateTokensDeterministic(t *testing.T) {
	text := "The quick brown fox jumps over the lazy dog."
	first := EstimateTokens(text)
	for i := 0; i < 10; i++ {
		if got := EstimateTokens(text); got != first {
			t.Fatalf("Estimate changed between calls: %d vs %d", first, got)
		}
	}
}
