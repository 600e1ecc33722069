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
	googleAPIURL = "https://generativelanguage.googleapis.com/v1beta/models"
)

// GoogleProvider implements the LLMProvider interface for Google's Gemini models
type GoogleProvider struct {
	Config
	httpClient *http.Client
}

// GooglePart is one text part of a Gemini content block.
type GooglePart struct {
	Text string `json:"text"`
}

// GoogleContent is a role-tagged content block in Gemini's API format.
type GoogleContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []GooglePart `json:"parts"`
}

// GoogleRequest represents a request to Google's Gemini API
type GoogleRequest struct {
	Contents          []GoogleContent `json:"contents"`
	SystemInstruction *GoogleContent  `json:"systemInstruction,omitempty"`
	GenerationConfig  struct {
		MaxOutputTokens int     `json:"maxOutputTokens"`
		Temperature     float32 `json:"temperature"`
	} `json:"generationConfig"`
}

// GoogleResponse represents a response from Google's Gemini API
type GoogleResponse struct {
	Candidates []struct {
		Content struct {
			Parts []GooglePart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// NewGoogleProvider creates a new instance of the Google provider
func NewGoogleProvider(config Config) *GoogleProvider {
	return &GoogleProvider{
		Config: config,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// Name returns the provider name
func (p *GoogleProvider) Name() string {
	return ProviderGoogle
}

// Generate implements the LLMProvider interface for Google
func (p *GoogleProvider) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	if p.APIKey == "" {
		return "", fmt.Errorf("Google API key not provided")
	}

	model := req.Model
	if model == "" {
		model = p.ModelID
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	reqBody := GoogleRequest{}
	reqBody.GenerationConfig.MaxOutputTokens = maxTokens
	reqBody.GenerationConfig.Temperature = req.Temperature
	for _, m := range req.Messages {
		if m.Role == RoleSystem {
			reqBody.SystemInstruction = &GoogleContent{
				Parts: []GooglePart{{Text: m.Content}},
			}
			continue
		}
		reqBody.Contents = append(reqBody.Contents, GoogleContent{
			Role:  "user",
			Parts: []GooglePart{{Text: m.Content}},
		})
	}

	reqJSON, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("error marshaling request: %v", err)
	}

	baseURL := p.BaseURL
	if baseURL == "" {
		baseURL = googleAPIURL
	}
	apiURL := fmt.Sprintf("%s/%s:generateContent?key=%s", baseURL, model, p.APIKey)

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

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("error sending request to Google API: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response body: %v", err)
	}

	var googleResponse GoogleResponse
	if err := json.Unmarshal(respBody, &googleResponse); err != nil {
		return "", fmt.Errorf("error unmarshaling response: %v", err)
	}

	if googleResponse.Error != nil {
		return "", fmt.Errorf("Google API error: %s: %s",
			googleResponse.Error.Status, googleResponse.Error.Message)
	}

	if len(googleResponse.Candidates) == 0 ||
		len(googleResponse.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from Google API")
	}

	var text strings.Builder
	for _, part := range googleResponse.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("empty response from Google API")
	}

	return strings.TrimSpace(text.String()), nil
}
