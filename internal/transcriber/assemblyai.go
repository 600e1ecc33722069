package transcriber

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/notetakerai/notetaker/internal/telemetry"
)

const (
	assemblyAIBaseURL = "https://api.assemblyai.com"

	// DefaultPollInterval is how often a blocking transcription checks
	// job status.
	DefaultPollInterval = 1 * time.Second

	// ProviderAssemblyAI is the service name.
	ProviderAssemblyAI = "assemblyai"
)

// Config holds the settings for an AssemblyAI client.
type Config struct {
	APIKey       string
	BaseURL      string
	PollInterval time.Duration
}

// AssemblyAIClient implements the Transcriber interface against the
// AssemblyAI REST API: upload the file, create a transcript job, poll
// until it reaches a terminal status.
type AssemblyAIClient struct {
	Config
	httpClient *http.Client
	metrics    *telemetry.MetricsCollector
}

// assemblyAIUploadResponse is the response to an audio upload
type assemblyAIUploadResponse struct {
	UploadURL string `json:"upload_url"`
}

// assemblyAITranscriptRequest creates a transcription job
type assemblyAITranscriptRequest struct {
	AudioURL string `json:"audio_url"`
}

// assemblyAITranscriptResponse is the job state returned on create and poll
type assemblyAITranscriptResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Text   string `json:"text"`
	Error  string `json:"error"`
}

// NewAssemblyAIClient creates a new AssemblyAI transcriber client
func NewAssemblyAIClient(config Config) *AssemblyAIClient {
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultPollInterval
	}
	return &AssemblyAIClient{
		Config: config,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		metrics: telemetry.NewMetricsCollector(),
	}
}

// GetMetrics returns the metrics collector for this client
func (c *AssemblyAIClient) GetMetrics() *telemetry.MetricsCollector {
	return c.metrics
}

// Name returns the service name
func (c *AssemblyAIClient) Name() string {
	return ProviderAssemblyAI
}

func (c *AssemblyAIClient) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return assemblyAIBaseURL
}

// TranscribeFile uploads the audio file, starts a job and polls until
// the job completes, errors, or ctx is done.
func (c *AssemblyAIClient) TranscribeFile(ctx context.Context, audioPath string) (*Transcript, error) {
	startTime := time.Now()
	defer func() {
		c.metrics.RecordTimer(telemetry.MetricTranscriptionTime, time.Since(startTime))
	}()

	transcript, err := c.StartTranscription(ctx, audioPath)
	if err != nil {
		return nil, err
	}

	ticker := time.NewTicker(c.PollInterval)
	defer ticker.Stop()

	for !transcript.Done() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for transcript %s: %w", transcript.ID, ctx.Err())
		case <-ticker.C:
		}

		c.metrics.IncrementCounter(telemetry.MetricTranscriptionPolls, 1)
		transcript, err = c.GetTranscript(ctx, transcript.ID)
		if err != nil {
			return nil, err
		}
	}

	switch transcript.Status {
	case StatusCompleted:
		c.metrics.IncrementCounter(telemetry.MetricTranscriptionsCompleted, 1)
	case StatusError:
		c.metrics.IncrementCounter(telemetry.MetricTranscriptionsFailed, 1)
	}

	return transcript, nil
}

// StartTranscription uploads the audio file and creates a job without
// waiting for it to finish.
func (c *AssemblyAIClient) StartTranscription(ctx context.Context, audioPath string) (*Transcript, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("AssemblyAI API key not provided")
	}

	uploadURL, err := c.uploadAudio(ctx, audioPath)
	if err != nil {
		return nil, err
	}

	reqJSON, err := json.Marshal(assemblyAITranscriptRequest{AudioURL: uploadURL})
	if err != nil {
		return nil, fmt.Errorf("error marshaling request: %v", err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL()+"/v2/transcript",
		bytes.NewReader(reqJSON),
	)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", c.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error sending request to AssemblyAI API: %v", err)
	}
	defer resp.Body.Close()

	job, err := decodeTranscriptResponse(resp)
	if err != nil {
		return nil, err
	}

	c.metrics.IncrementCounter(telemetry.MetricTranscriptionsStarted, 1)
	return jobToTranscript(job), nil
}

// GetTranscript fetches the current state of a transcription job.
func (c *AssemblyAIClient) GetTranscript(ctx context.Context, transcriptID string) (*Transcript, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("AssemblyAI API key not provided")
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.baseURL()+"/v2/transcript/"+transcriptID,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}
	httpReq.Header.Set("Authorization", c.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error sending request to AssemblyAI API: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrTranscriptNotFound, transcriptID)
	}

	job, err := decodeTranscriptResponse(resp)
	if err != nil {
		return nil, err
	}

	return jobToTranscript(job), nil
}

// uploadAudio streams the local file to the upload endpoint and returns
// the temporary URL AssemblyAI assigns to it.
func (c *AssemblyAIClient) uploadAudio(ctx context.Context, audioPath string) (string, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("error opening audio file: %v", err)
	}
	defer file.Close()

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL()+"/v2/upload",
		file,
	)
	if err != nil {
		return "", fmt.Errorf("error creating request: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/octet-stream")
	httpReq.Header.Set("Authorization", c.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("error uploading audio to AssemblyAI API: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response body: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AssemblyAI upload error: status %d: %s", resp.StatusCode, string(respBody))
	}

	var uploadResp assemblyAIUploadResponse
	if err := json.Unmarshal(respBody, &uploadResp); err != nil {
		return "", fmt.Errorf("error unmarshaling response: %v", err)
	}
	if uploadResp.UploadURL == "" {
		return "", fmt.Errorf("empty upload URL from AssemblyAI API")
	}

	return uploadResp.UploadURL, nil
}

func decodeTranscriptResponse(resp *http.Response) (*assemblyAITranscriptResponse, error) {
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("AssemblyAI API error: status %d: %s", resp.StatusCode, string(respBody))
	}

	var job assemblyAITranscriptResponse
	if err := json.Unmarshal(respBody, &job); err != nil {
		return nil, fmt.Errorf("error unmarshaling response: %v", err)
	}
	if job.ID == "" {
		return nil, fmt.Errorf("missing transcript ID in AssemblyAI response")
	}

	return &job, nil
}

func jobToTranscript(job *assemblyAITranscriptResponse) *Transcript {
	transcript := &Transcript{
		ID:     job.ID,
		Status: job.Status,
		Text:   job.Text,
	}

	switch job.Status {
	case StatusError:
		transcript.Error = job.Error
		if transcript.Error == "" {
			transcript.Error = "Transcription failed"
		}
	case StatusQueued:
		// Queued jobs read as processing to callers; the distinction
		// only matters to the service.
		transcript.Status = StatusProcessing
	}

	return transcript
}
