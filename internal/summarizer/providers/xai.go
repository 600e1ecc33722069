package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	xaiAPIURL = "https://api.x.ai/v1/chat/completions"
)

// XAIProvider implements the LLMProvider interface for X.AI's Grok
type XAIProvider struct {
	Config
	httpClient *http.Client
}

// XAIMessage represents a message in X.AI's chat format (OpenAI compatible)
type XAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// XAIRequest represents a request to X.AI's API (OpenAI compatible)
type XAIRequest struct {
	Model       string       `json:"model"`
	Messages    []XAIMessage `json:"messages"`
	MaxTokens   int          `json:"max_tokens"`
	Temperature float32      `json:"temperature,omitempty"`
}

// XAIResponse represents a response from X.AI's API (OpenAI compatible)
type XAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// NewXAIProvider creates a new instance of the X.AI provider
func NewXAIProvider(config Config) *XAIProvider {
	return &XAIProvider{
		Config: config,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// Name returns the provider name
func (p *XAIProvider) Name() string {
	return ProviderXAI
}

// Generate implements the LLMProvider interface for X.AI
func (p *XAIProvider) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	if p.APIKey == "" {
		return "", fmt.Errorf("X.AI API key not provided")
	}

	model := req.Model
	if model == "" {
		model = p.ModelID
	}
	if model == "" {
		model = "grok-2-latest"
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	reqBody := XAIRequest{
		Model:       model,
		MaxTokens:   maxTokens,
		Temperature: req.Temperature,
	}
	for _, m := range req.Messages {
		reqBody.Messages = append(reqBody.Messages, XAIMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	reqJSON, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("error marshaling request: %v", err)
	}

	apiURL := p.BaseURL
	if apiURL == "" {
		apiURL = xaiAPIURL
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		apiURL,
		strings.NewReader(string(reqJSON)),
	)
	if err != nil {
		return "", fmt.Errorf("error creating request: %v", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.APIKey))

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("error sending request to X.AI API: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response body: %v", err)
	}

	var xaiResponse XAIResponse
	if err := json.Unmarshal(respBody, &xaiResponse); err != nil {
		return "", fmt.Errorf("error unmarshaling response: %v", err)
	}

	if xaiResponse.Error != nil {
		return "", fmt.Errorf("X.AI API error: %s: %s",
			xaiResponse.Error.Type, xaiResponse.Error.Message)
	}

	if len(xaiResponse.Choices) == 0 || xaiResponse.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("empty response from X.AI API")
	}

	return strings.TrimSpace(xaiResponse.Choices[0].Message.Content), nil
}
