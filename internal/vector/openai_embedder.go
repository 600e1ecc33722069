package vector

import (
	"context"
	"fmt"
	"os"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// embeddingTimeout bounds one embedding API call.
const embeddingTimeout = 30 * time.Second

// OpenAIEmbedder implements the Embedder interface using the OpenAI
// embeddings API.
type OpenAIEmbedder struct {
	apiKey  string
	baseURL string
	model   openai.EmbeddingModel
	client  *openai.Client
}

// OpenAIEmbedderConfig holds the settings for an OpenAIEmbedder.
type OpenAIEmbedderConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// NewOpenAIEmbedder creates a new OpenAIEmbedder instance.
func NewOpenAIEmbedder(config OpenAIEmbedderConfig) *OpenAIEmbedder {
	model := openai.SmallEmbedding3
	if config.Model != "" {
		model = openai.EmbeddingModel(config.Model)
	}
	return &OpenAIEmbedder{
		apiKey:  config.APIKey,
		baseURL: config.BaseURL,
		model:   model,
	}
}

// Initialize sets up the embedder, reading OPENAI_API_KEY when no key
// was configured.
func (e *OpenAIEmbedder) Initialize() error {
	if e.apiKey == "" {
		e.apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if e.apiKey == "" {
		return fmt.Errorf("OpenAI API key not provided")
	}

	clientConfig := openai.DefaultConfig(e.apiKey)
	if e.baseURL != "" {
		clientConfig.BaseURL = e.baseURL
	}
	e.client = openai.NewClientWithConfig(clientConfig)
	return nil
}

// CreateEmbedding converts text into a vector representation.
func (e *OpenAIEmbedder) CreateEmbedding(text string) ([]float32, error) {
	if e.client == nil {
		if err := e.Initialize(); err != nil {
			return nil, err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), embeddingTimeout)
	defer cancel()

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: e.model,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating embedding: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("empty embedding response")
	}

	return resp.Data[0].Embedding, nil
}
