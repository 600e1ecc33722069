// Package summarizer implements the chunked map-reduce summarization
// pipeline for audio transcriptions: estimate, split, summarize each
// chunk, combine, plus the parallel action-item extraction path.
package summarizer

import (
	"errors"
)

const (
	// DefaultChunkBudget is the default per-chunk token budget. A
	// transcription estimated at or under this budget is summarized in
	// a single pass.
	DefaultChunkBudget = 12000

	// DefaultSummaryTemperature is used for the single-pass, per-chunk
	// and combine summary calls.
	DefaultSummaryTemperature = 0.75

	// DefaultActionItemTemperature is used for action-item extraction calls.
	DefaultActionItemTemperature = 0.6

	// Output budgets for the different call sites.
	DefaultMaxSummaryTokens      = 1500
	DefaultMaxChunkSummaryTokens = 1000
	DefaultMaxActionItemTokens   = 750
)

// Errors
var (
	ErrProviderNotSupported         = errors.New("provider not supported")
	ErrSummarizationFailed          = errors.New("summarization failed")
	ErrActionItemExtractionFailed   = errors.New("action item extraction failed")
	ErrConfigError                  = errors.New("configuration error")
)

// Summarizer defines the interface for turning a transcription into a
// structured summary and a deduplicated action-item list.
type Summarizer interface {
	// Summarize takes a full transcription and returns a structured
	// summary. The whole operation fails if any underlying model call
	// fails; no partial summary is returned.
	Summarize(text string) (string, error)

	// ExtractActionItems returns the deduplicated action items found
	// in the transcription, in first-seen order.
	ExtractActionItems(text string) ([]string, error)

	// Initialize sets up the summarizer with any required configuration.
	Initialize() error
}
