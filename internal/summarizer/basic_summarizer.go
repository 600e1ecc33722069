package summarizer

import (
	"strings"
)

// DefaultBasicSummaryLength is the character budget for BasicSummarizer
// output.
const DefaultBasicSummaryLength = 500

// BasicSummarizer is an offline implementation of the Summarizer
// interface for environments without model credentials. It extracts the
// leading sentences of the transcription as a summary and scans the
// text itself for bullet lines as action items.
type BasicSummarizer struct {
	maxSummaryLen int
}

// NewBasicSummarizer creates a new BasicSummarizer instance.
func NewBasicSummarizer(maxSummaryLen int) *BasicSummarizer {
	if maxSummaryLen <= 0 {
		maxSummaryLen = DefaultBasicSummaryLength
	}
	return &BasicSummarizer{
		maxSummaryLen: maxSummaryLen,
	}
}

// Initialize sets up the summarizer with any required configuration.
func (s *BasicSummarizer) Initialize() error {
	return nil // No initialization needed for the basic summarizer
}

// Summarize truncates the transcription to the configured length,
// preferring a sentence boundary and falling back to a word boundary
// with an ellipsis.
func (s *BasicSummarizer) Summarize(text string) (string, error) {
	if len(text) <= s.maxSummaryLen {
		return text, nil
	}

	ellipsis := "..."
	truncated := text[:s.maxSummaryLen]

	lastPeriod := strings.LastIndex(truncated, ".")
	lastQuestion := strings.LastIndex(truncated, "?")
	lastExclamation := strings.LastIndex(truncated, "!")

	lastSentenceBoundary := max(lastPeriod, max(lastQuestion, lastExclamation))
	if lastSentenceBoundary > 0 {
		return text[:lastSentenceBoundary+1], nil
	}

	// No sentence boundary in range, fall back to the last word
	// boundary and leave room for the ellipsis.
	truncateLen := s.maxSummaryLen - len(ellipsis)
	if truncateLen < 0 {
		truncateLen = 0
	}
	if truncateLen < len(text) {
		truncated = text[:truncateLen]
	}

	lastSpace := strings.LastIndex(truncated, " ")
	if lastSpace > 0 {
		return text[:lastSpace] + ellipsis, nil
	}

	return truncated + ellipsis, nil
}

// ExtractActionItems scans the transcription itself for bullet lines.
// Without a model there is nothing to infer, so only text the speaker
// already phrased as a list is returned.
func (s *BasicSummarizer) ExtractActionItems(text string) ([]string, error) {
	return dedupeActionItems(parseActionItems(text)), nil
}

// max returns the larger of two integers.
func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
