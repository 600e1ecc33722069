package summarizer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/notetakerai/notetaker/internal/summarizer/providers"
	"github.com/notetakerai/notetaker/internal/telemetry"
)

// healthCheckTimeout bounds the single probe call used for a health check.
const healthCheckTimeout = 5 * time.Second

// HealthStatus represents the health status of a component
type HealthStatus string

const (
	// StatusHealthy indicates a component is fully operational
	StatusHealthy HealthStatus = "healthy"

	// StatusUnhealthy indicates a component is not operational
	StatusUnhealthy HealthStatus = "unhealthy"
)

// HealthReport contains information about the current health of the summarizer
type HealthReport struct {
	Status        HealthStatus       `json:"status"`
	Timestamp     time.Time          `json:"timestamp"`
	Providers     map[string]bool    `json:"providers"`
	ResponseTimes map[string]float64 `json:"response_times_ms"`
	PipelineStats map[string]int64   `json:"pipeline_stats"`
	SuccessRate   float64            `json:"success_rate"`
	TotalRequests int64              `json:"total_requests"`
	Version       string             `json:"version"`
}

// CheckProviderHealth probes the configured provider with a tiny
// request and reports whether it responded. The result is also recorded
// as a gauge on the summarizer's metrics.
func (s *AISummarizer) CheckProviderHealth() map[string]bool {
	results := make(map[string]bool)

	if err := s.ensureInitialized(); err != nil {
		return results
	}

	ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
	defer cancel()

	_, err := s.provider.Generate(ctx, providers.GenerateRequest{
		Messages: []providers.Message{
			{Role: providers.RoleUser, Content: "Reply with the single word OK."},
		},
		Model:     s.modelID,
		MaxTokens: 5,
	})

	healthy := err == nil
	results[s.provider.Name()] = healthy
	s.metrics.SetGauge(telemetry.MetricProviderHealth, boolToFloat64(healthy))

	return results
}

// CreateHealthReport generates a health report for the summarizer
func CreateHealthReport(summarizer *AISummarizer) (*HealthReport, error) {
	if summarizer == nil {
		return nil, fmt.Errorf("summarizer is nil")
	}

	m := summarizer.GetMetrics()
	if m == nil {
		return nil, fmt.Errorf("metrics collector is nil")
	}

	providerHealth := summarizer.CheckProviderHealth()

	status := StatusUnhealthy
	for _, isHealthy := range providerHealth {
		if isHealthy {
			status = StatusHealthy
			break
		}
	}

	totalSuccess := m.GetCounter(telemetry.MetricAPICallsSuccess)
	totalFailure := m.GetCounter(telemetry.MetricAPICallsFailure)
	totalRequests := totalSuccess + totalFailure

	var successRate float64
	if totalRequests > 0 {
		successRate = float64(totalSuccess) / float64(totalRequests) * 100.0
	}

	responseTimes := map[string]float64{
		"model_call": float64(m.GetTimerAverage(telemetry.MetricResponseTime)) / float64(time.Millisecond),
		"summarize":  float64(m.GetTimerAverage(telemetry.MetricSummarizeTime)) / float64(time.Millisecond),
	}

	pipelineStats := map[string]int64{
		"single_pass":     m.GetCounter(telemetry.MetricSinglePass),
		"map_reduce":      m.GetCounter(telemetry.MetricMapReduce),
		"chunks_produced": m.GetCounter(telemetry.MetricChunksProduced),
		"combine_calls":   m.GetCounter(telemetry.MetricCombineCalls),
	}

	return &HealthReport{
		Status:        status,
		Timestamp:     time.Now(),
		Providers:     providerHealth,
		ResponseTimes: responseTimes,
		PipelineStats: pipelineStats,
		SuccessRate:   successRate,
		TotalRequests: totalRequests,
		Version:       "1.0.0",
	}, nil
}

// CreateHealthReportJSON generates a JSON health report for the summarizer
func CreateHealthReportJSON(summarizer *AISummarizer) (string, error) {
	report, err := CreateHealthReport(summarizer)
	if err != nil {
		return "", err
	}

	reportJSON, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal health report: %w", err)
	}

	return string(reportJSON), nil
}

// ResetMetrics resets all metrics for the summarizer
func ResetMetrics(summarizer *AISummarizer) error {
	if summarizer == nil {
		return fmt.Errorf("summarizer is nil")
	}

	m := summarizer.GetMetrics()
	if m == nil {
		return fmt.Errorf("metrics collector is nil")
	}

	m.Reset()
	return nil
}

// boolToFloat64 converts a boolean to a float64 (1.0 for true, 0.0 for false)
func boolToFloat64(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}
