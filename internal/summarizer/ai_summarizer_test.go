package summarizer

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/notetakerai/notetaker/internal/summarizer/providers"
)

// twoChunkText splits into exactly two chunks at a budget of 5 tokens.
const twoChunkText = "aaaa bbbb\n\ncccc dddd\n\neeee ffff"

func newTestSummarizer(provider providers.LLMProvider, chunkBudget int) *AISummarizer {
	return NewAISummarizerWithProvider(provider, &AISummarizerConfig{
		ChunkBudget: chunkBudget,
		Timeout:     5 * time.Second,
	})
}

func TestNewAISummarizerDefaults(t *testing.T) {
	s := NewAISummarizer(nil)
	if s.chunkBudget != DefaultChunkBudget {
		t.Errorf("Expected default chunk budget %d, got %d", DefaultChunkBudget, s.chunkBudget)
	}
	if s.summaryTemperature != DefaultSummaryTemperature {
		t.Errorf("Expected default summary temperature, got %v", s.summaryTemperature)
	}
	if s.timeout != DefaultTimeout {
		t.Errorf("Expected default timeout, got %v", s.timeout)
	}
}

func TestChunkBudgetForModel(t *testing.T) {
	if got := chunkBudgetForModel("gpt-4"); got != 2000 {
		t.Errorf("Expected budget 2000 for gpt-4, got %d", got)
	}
	if got := chunkBudgetForModel("some-future-model"); got != DefaultChunkBudget {
		t.Errorf("Expected default budget for unknown model, got %d", got)
	}
}

func TestSummarizeSinglePass(t *testing.T) {
	provider := providers.NewScriptedProvider("mock", "A structured summary.")
	s := newTestSummarizer(provider, 100)

	summary, err := s.Summarize("A short transcription well under the budget.")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if summary != "A structured summary." {
		t.Errorf("Expected 'A structured summary.', got '%s'", summary)
	}
	if provider.CallCount() != 1 {
		t.Errorf("Expected exactly 1 model call, got %d", provider.CallCount())
	}

	req := provider.Requests[0]
	if len(req.Messages) != 2 || req.Messages[0].Role != providers.RoleSystem {
		t.Error("Expected a system and a user message")
	}
	if req.Temperature != DefaultSummaryTemperature {
		t.Errorf("Expected summary temperature, got %v", req.Temperature)
	}
	if req.MaxTokens != DefaultMaxSummaryTokens {
		t.Errorf("Expected %d max tokens, got %d", DefaultMaxSummaryTokens, req.MaxTokens)
	}
}

func TestSummarizeMapReduce(t *testing.T) {
	provider := providers.NewScriptedProvider("mock",
		"Summary of part one.",
		"Summary of part two.",
		"The combined summary.")
	s := newTestSummarizer(provider, 5)

	summary, err := s.Summarize(twoChunkText)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if summary != "The combined summary." {
		t.Errorf("Expected combined summary, got '%s'", summary)
	}
	if provider.CallCount() != 3 {
		t.Fatalf("Expected 3 model calls, got %d", provider.CallCount())
	}

	// Chunk calls arrive in input order.
	if !strings.Contains(provider.Requests[0].Messages[1].Content, "part 1 of 2") {
		t.Error("Expected first call to carry chunk 1")
	}
	if !strings.Contains(provider.Requests[1].Messages[1].Content, "part 2 of 2") {
		t.Error("Expected second call to carry chunk 2")
	}

	// The combine call sees both chunk summaries, in order.
	combineContent := provider.Requests[2].Messages[1].Content
	first := strings.Index(combineContent, "Summary of part one.")
	second := strings.Index(combineContent, "Summary of part two.")
	if first < 0 || second < 0 {
		t.Fatal("Expected combine prompt to include both chunk summaries")
	}
	if first > second {
		t.Error("Expected chunk summaries in ordinal order")
	}
}

func TestSummarizeSingleChunkSkipsCombine(t *testing.T) {
	// One oversized atomic sentence yields exactly one chunk even
	// though the input is over budget. The chunk summary is returned
	// as-is with no combine call.
	provider := providers.NewScriptedProvider("mock",
		"The only chunk summary.",
		"MUST NOT BE REQUESTED")
	s := newTestSummarizer(provider, 5)

	text := strings.Repeat("y", 60)
	summary, err := s.Summarize(text)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if summary != "The only chunk summary." {
		t.Errorf("Expected the chunk summary unchanged, got '%s'", summary)
	}
	if provider.CallCount() != 1 {
		t.Errorf("Expected 1 model call, got %d", provider.CallCount())
	}
}

func TestSummarizeSinglePassFailure(t *testing.T) {
	provider := providers.NewScriptedProvider("mock", "unused").
		FailAt(1, errors.New("model unavailable"))
	s := newTestSummarizer(provider, 100)

	_, err := s.Summarize("A short transcription.")
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !errors.Is(err, ErrSummarizationFailed) {
		t.Errorf("Expected ErrSummarizationFailed, got %v", err)
	}
	if provider.CallCount() != 1 {
		t.Errorf("Expected no retries, got %d calls", provider.CallCount())
	}
}

func TestSummarizeChunkFailureAborts(t *testing.T) {
	provider := providers.NewScriptedProvider("mock",
		"Summary of part one.",
		"unused",
		"unused").
		FailAt(2, errors.New("model unavailable"))
	s := newTestSummarizer(provider, 5)

	_, err := s.Summarize(twoChunkText)
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !errors.Is(err, ErrSummarizationFailed) {
		t.Errorf("Expected ErrSummarizationFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "chunk 2 of 2") {
		t.Errorf("Expected failing chunk in error, got: %v", err)
	}
	// The combine call never happens after a chunk failure.
	if provider.CallCount() != 2 {
		t.Errorf("Expected 2 model calls, got %d", provider.CallCount())
	}
}

func TestExtractActionItems(t *testing.T) {
	provider := providers.NewScriptedProvider("mock",
		"- Call Bob\n- call bob\n- Email Alice")
	s := newTestSummarizer(provider, 100)

	items, err := s.ExtractActionItems("A short transcription.")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	expected := []string{"Call Bob", "Email Alice"}
	if len(items) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, items)
	}
	for i := range expected {
		if items[i] != expected[i] {
			t.Errorf("Expected item '%s', got '%s'", expected[i], items[i])
		}
	}

	req := provider.Requests[0]
	if req.Temperature != DefaultActionItemTemperature {
		t.Errorf("Expected action item temperature, got %v", req.Temperature)
	}
	if req.MaxTokens != DefaultMaxActionItemTokens {
		t.Errorf("Expected %d max tokens, got %d", DefaultMaxActionItemTokens, req.MaxTokens)
	}
}

func TestExtractActionItemsWholeInputFailureYieldsEmptyList(t *testing.T) {
	provider := providers.NewScriptedProvider("mock", "unused").
		FailAt(1, errors.New("model unavailable"))
	s := newTestSummarizer(provider, 100)

	items, err := s.ExtractActionItems("A short transcription.")
	if err != nil {
		t.Fatalf("Expected failure to be swallowed, got error: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("Expected empty list, got %v", items)
	}
}

func TestExtractActionItemsChunkFailureAborts(t *testing.T) {
	provider := providers.NewScriptedProvider("mock", "unused").
		FailAt(1, errors.New("model unavailable"))
	s := newTestSummarizer(provider, 5)

	_, err := s.ExtractActionItems(twoChunkText)
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !errors.Is(err, ErrActionItemExtractionFailed) {
		t.Errorf("Expected ErrActionItemExtractionFailed, got %v", err)
	}
}

func TestExtractActionItemsChunkedDedupesAcrossChunks(t *testing.T) {
	provider := providers.NewScriptedProvider("mock",
		"- Call Bob\n- Email Alice",
		"- call bob\n- Review budget")
	s := newTestSummarizer(provider, 5)

	items, err := s.ExtractActionItems(twoChunkText)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	expected := []string{"Call Bob", "Email Alice", "Review budget"}
	if len(items) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, items)
	}
	for i := range expected {
		if items[i] != expected[i] {
			t.Errorf("Expected item '%s', got '%s'", expected[i], items[i])
		}
	}
}

func TestSummarizeUninitializedWithoutCredentials(t *testing.T) {
	t.Setenv("NOTETAKER_SUMMARIZER_PROVIDER", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "")

	s := NewAISummarizer(nil)
	if _, err := s.Summarize("text"); err == nil {
		t.Error("Expected initialization error without credentials, got nil")
	}
}
