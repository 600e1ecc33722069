package summarizer

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/notetakerai/notetaker/internal/summarizer/providers"
	"github.com/notetakerai/notetaker/internal/telemetry"
)

// DefaultTimeout bounds one whole Summarize or ExtractActionItems call,
// including every chunk call it makes.
const DefaultTimeout = 120 * time.Second

// modelChunkBudgets overrides the default chunk budget for models whose
// context window calls for it. Budgets are roughly a quarter of the
// model's window, leaving room for prompts and output.
var modelChunkBudgets = map[string]int{
	"gpt-3.5-turbo": 4000,
	"gpt-4":         2000,
}

// AISummarizer implements the Summarizer interface using an LLM
// provider. Transcriptions over the chunk budget are split, each chunk
// summarized in order, and the chunk summaries combined in one final
// call. A failure at any stage fails the whole operation; there is no
// retry and no partial result.
type AISummarizer struct {
	provider              providers.LLMProvider
	modelID               string
	chunkBudget           int
	summaryTemperature    float32
	actionItemTemperature float32
	maxSummaryTokens      int
	maxChunkSummaryTokens int
	maxActionItemTokens   int
	timeout               time.Duration
	providerInitialized   bool
	providerFactory       *providers.ProviderFactory
	metrics               *telemetry.MetricsCollector
	mu                    sync.RWMutex
}

// AISummarizerConfig holds configuration for the AISummarizer
type AISummarizerConfig struct {
	ProviderName          string
	ModelID               string
	APIKey                string
	ChunkBudget           int
	SummaryTemperature    float32
	ActionItemTemperature float32
	MaxSummaryTokens      int
	MaxChunkSummaryTokens int
	MaxActionItemTokens   int
	Timeout               time.Duration
}

// NewAISummarizer creates a new AISummarizer with the specified settings
func NewAISummarizer(config *AISummarizerConfig) *AISummarizer {
	if config == nil {
		config = &AISummarizerConfig{}
	}

	// Set defaults if not specified
	if config.ChunkBudget <= 0 {
		config.ChunkBudget = chunkBudgetForModel(config.ModelID)
	}
	if config.SummaryTemperature <= 0 {
		config.SummaryTemperature = DefaultSummaryTemperature
	}
	if config.ActionItemTemperature <= 0 {
		config.ActionItemTemperature = DefaultActionItemTemperature
	}
	if config.MaxSummaryTokens <= 0 {
		config.MaxSummaryTokens = DefaultMaxSummaryTokens
	}
	if config.MaxChunkSummaryTokens <= 0 {
		config.MaxChunkSummaryTokens = DefaultMaxChunkSummaryTokens
	}
	if config.MaxActionItemTokens <= 0 {
		config.MaxActionItemTokens = DefaultMaxActionItemTokens
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}

	summarizer := &AISummarizer{
		modelID:               config.ModelID,
		chunkBudget:           config.ChunkBudget,
		summaryTemperature:    config.SummaryTemperature,
		actionItemTemperature: config.ActionItemTemperature,
		maxSummaryTokens:      config.MaxSummaryTokens,
		maxChunkSummaryTokens: config.MaxChunkSummaryTokens,
		maxActionItemTokens:   config.MaxActionItemTokens,
		timeout:               config.Timeout,
		metrics:               telemetry.NewMetricsCollector(),
	}

	// When the caller supplies provider credentials directly, build the
	// provider now instead of waiting for Initialize to read the
	// environment.
	if config.ProviderName != "" && config.APIKey != "" {
		summarizer.providerFactory = providers.NewProviderFactory(map[string]providers.Config{
			config.ProviderName: {
				ModelID: config.ModelID,
				APIKey:  config.APIKey,
			},
		})
		if provider, err := summarizer.providerFactory.GetProvider(config.ProviderName); err == nil {
			summarizer.provider = provider
			summarizer.providerInitialized = true
		}
	}

	return summarizer
}

// NewAISummarizerWithProvider creates an AISummarizer around an already
// constructed provider. Used by tests and by callers that manage
// provider lifecycle themselves.
func NewAISummarizerWithProvider(provider providers.LLMProvider, config *AISummarizerConfig) *AISummarizer {
	summarizer := NewAISummarizer(config)
	summarizer.provider = provider
	summarizer.providerInitialized = true
	return summarizer
}

// chunkBudgetForModel returns the per-chunk token budget for a model,
// falling back to DefaultChunkBudget for unknown models.
func chunkBudgetForModel(modelID string) int {
	if budget, ok := modelChunkBudgets[modelID]; ok {
		return budget
	}
	return DefaultChunkBudget
}

// Initialize sets up the summarizer with required configuration
func (s *AISummarizer) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// If already initialized, do nothing
	if s.providerInitialized {
		return nil
	}

	if s.provider == nil {
		config, err := loadConfigFromEnvironment()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		s.providerFactory = providers.NewProviderFactory(map[string]providers.Config{
			config.ProviderName: {
				ModelID: config.ModelID,
				APIKey:  config.APIKey,
			},
		})

		provider, err := s.providerFactory.GetProvider(config.ProviderName)
		if err != nil {
			return fmt.Errorf("failed to create provider: %w", err)
		}
		s.provider = provider

		if s.modelID == "" {
			s.modelID = config.ModelID
			s.chunkBudget = config.ChunkBudget
		}
	}

	s.providerInitialized = true
	return nil
}

// loadConfigFromEnvironment loads configuration from environment variables
func loadConfigFromEnvironment() (*AISummarizerConfig, error) {
	providerName := getEnvWithDefault("NOTETAKER_SUMMARIZER_PROVIDER", providers.ProviderOpenAI)
	modelID := getEnvWithDefault("NOTETAKER_SUMMARIZER_MODEL_ID", "")
	apiKey := getProviderAPIKey(providerName)

	if apiKey == "" {
		return nil, fmt.Errorf("%w: missing API key for provider %s", ErrConfigError, providerName)
	}

	config := &AISummarizerConfig{
		ProviderName: providerName,
		ModelID:      modelID,
		APIKey:       apiKey,
		ChunkBudget:  getEnvIntWithDefault("NOTETAKER_SUMMARIZER_CHUNK_BUDGET", chunkBudgetForModel(modelID)),
		Timeout:      getEnvDurationWithDefault("NOTETAKER_SUMMARIZER_TIMEOUT", DefaultTimeout),
	}

	return config, nil
}

// getProviderAPIKey retrieves the API key for the specified provider
func getProviderAPIKey(providerName string) string {
	switch providerName {
	case providers.ProviderAnthropic:
		return os.Getenv("ANTHROPIC_API_KEY")
	case providers.ProviderOpenAI:
		return os.Getenv("OPENAI_API_KEY")
	case providers.ProviderGoogle:
		return os.Getenv("GOOGLE_API_KEY")
	case providers.ProviderXAI:
		return os.Getenv("XAI_API_KEY")
	default:
		return ""
	}
}

// getEnvWithDefault retrieves an environment variable or returns the default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvIntWithDefault retrieves an environment variable as int or returns the default value
func getEnvIntWithDefault(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvDurationWithDefault retrieves an environment variable as duration or returns the default value
func getEnvDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// Summarize produces a structured summary of the transcription. Inputs
// within the chunk budget are summarized in a single model call; larger
// inputs go through the chunked map-reduce path.
func (s *AISummarizer) Summarize(text string) (string, error) {
	startTime := time.Now()
	defer func() {
		s.metrics.RecordTimer(telemetry.MetricSummarizeTime, time.Since(startTime))
	}()

	if err := s.ensureInitialized(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if EstimateTokens(text) <= s.chunkBudget {
		s.metrics.IncrementCounter(telemetry.MetricSinglePass, 1)
		summary, err := s.generate(ctx, summaryMessages(text), s.summaryTemperature, s.maxSummaryTokens)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrSummarizationFailed, err)
		}
		return summary, nil
	}

	s.metrics.IncrementCounter(telemetry.MetricMapReduce, 1)
	chunks := SplitChunks(text, s.chunkBudget)
	s.metrics.IncrementCounter(telemetry.MetricChunksProduced, int64(len(chunks)))

	summaries := make([]ChunkSummary, 0, len(chunks))
	for _, chunk := range chunks {
		summary, err := s.generate(ctx, chunkSummaryMessages(chunk), s.summaryTemperature, s.maxChunkSummaryTokens)
		if err != nil {
			return "", fmt.Errorf("%w: chunk %d of %d: %w", ErrSummarizationFailed, chunk.Ordinal, chunk.Total, err)
		}
		summaries = append(summaries, ChunkSummary{Ordinal: chunk.Ordinal, Text: summary})
	}

	return s.combine(ctx, summaries)
}

// combine merges ordered chunk summaries into the final summary. A
// single chunk summary is already the final summary and costs no extra
// model call.
func (s *AISummarizer) combine(ctx context.Context, summaries []ChunkSummary) (string, error) {
	if len(summaries) == 1 {
		return summaries[0].Text, nil
	}

	s.metrics.IncrementCounter(telemetry.MetricCombineCalls, 1)
	combined, err := s.generate(ctx, combineMessages(summaries), s.summaryTemperature, s.maxSummaryTokens)
	if err != nil {
		return "", fmt.Errorf("%w: combining %d chunk summaries: %w", ErrSummarizationFailed, len(summaries), err)
	}
	return combined, nil
}

// ExtractActionItems returns the deduplicated action items found in the
// transcription. For inputs within the chunk budget a failed model call
// yields an empty list rather than an error; on the chunked path any
// chunk failure fails the whole extraction.
func (s *AISummarizer) ExtractActionItems(text string) ([]string, error) {
	if err := s.ensureInitialized(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if EstimateTokens(text) <= s.chunkBudget {
		s.metrics.IncrementCounter(telemetry.MetricActionItemCalls, 1)
		output, err := s.generate(ctx, actionItemMessages(text), s.actionItemTemperature, s.maxActionItemTokens)
		if err != nil {
			s.metrics.IncrementCounter(telemetry.MetricActionItemSwallowed, 1)
			return []string{}, nil
		}
		return dedupeActionItems(parseActionItems(output)), nil
	}

	chunks := SplitChunks(text, s.chunkBudget)
	var items []string
	for _, chunk := range chunks {
		s.metrics.IncrementCounter(telemetry.MetricActionItemCalls, 1)
		output, err := s.generate(ctx, chunkActionItemMessages(chunk), s.actionItemTemperature, s.maxActionItemTokens)
		if err != nil {
			return nil, fmt.Errorf("%w: chunk %d of %d: %w", ErrActionItemExtractionFailed, chunk.Ordinal, chunk.Total, err)
		}
		items = append(items, parseActionItems(output)...)
	}

	return dedupeActionItems(items), nil
}

// generate makes one provider call and records call metrics.
func (s *AISummarizer) generate(ctx context.Context, messages []providers.Message, temperature float32, maxTokens int) (string, error) {
	callStart := time.Now()
	s.metrics.IncrementCounter(telemetry.MetricAPICalls, 1)

	output, err := s.provider.Generate(ctx, providers.GenerateRequest{
		Messages:    messages,
		Model:       s.modelID,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	s.metrics.RecordTimer(telemetry.MetricResponseTime, time.Since(callStart))

	if err != nil {
		s.metrics.IncrementCounter(telemetry.MetricAPICallsFailure, 1)
		return "", err
	}

	s.metrics.IncrementCounter(telemetry.MetricAPICallsSuccess, 1)
	return output, nil
}

func (s *AISummarizer) ensureInitialized() error {
	s.mu.RLock()
	initialized := s.providerInitialized
	s.mu.RUnlock()

	if initialized {
		return nil
	}
	if err := s.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize summarizer: %w", err)
	}
	return nil
}

// ChunkBudget returns the per-chunk token budget in effect.
func (s *AISummarizer) ChunkBudget() int {
	return s.chunkBudget
}

// GetMetrics returns the metrics collector for this summarizer
func (s *AISummarizer) GetMetrics() *telemetry.MetricsCollector {
	return s.metrics
}
