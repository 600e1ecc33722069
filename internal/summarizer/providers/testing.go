package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// MockResponseConfig holds configuration for mock API responses
type MockResponseConfig struct {
	StatusCode   int
	ResponseBody interface{}
	Headers      map[string]string
}

// MockServer creates a test server that returns the configured response
func MockServer(t *testing.T, config MockResponseConfig) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for k, v := range config.Headers {
			w.Header().Set(k, v)
		}

		if _, exists := config.Headers["Content-Type"]; !exists {
			w.Header().Set("Content-Type", "application/json")
		}

		w.WriteHeader(config.StatusCode)

		if config.ResponseBody != nil {
			var respBytes []byte
			var err error

			switch body := config.ResponseBody.(type) {
			case string:
				respBytes = []byte(body)
			case []byte:
				respBytes = body
			default:
				respBytes, err = json.Marshal(body)
				if err != nil {
					t.Fatalf("Failed to marshal mock response: %v", err)
				}
			}

			if _, err := w.Write(respBytes); err != nil {
				t.Fatalf("Failed to write response body: %v", err)
			}
		}
	}))
}

// TestProvider is a simple implementation of LLMProvider for testing.
// It returns the configured string or error on every Generate call.
type TestProvider struct {
	name         string
	returnError  error
	returnString string
}

// NewTestProvider creates a new TestProvider
func NewTestProvider(name string, returnString string, returnError error) *TestProvider {
	return &TestProvider{
		name:         name,
		returnString: returnString,
		returnError:  returnError,
	}
}

// Name returns the provider name
func (p *TestProvider) Name() string {
	return p.name
}

// Generate returns the configured string or error
func (p *TestProvider) Generate(_ context.Context, _ GenerateRequest) (string, error) {
	return p.returnString, p.returnError
}

// ScriptedProvider is a provider that records every request and replies
// from a fixed script, one response per call. Once the script runs out
// it repeats the final entry.
type ScriptedProvider struct {
	name      string
	responses []string
	errs      []error
	Requests  []GenerateRequest
}

// NewScriptedProvider creates a new ScriptedProvider
func NewScriptedProvider(name string, responses ...string) *ScriptedProvider {
	return &ScriptedProvider{
		name:      name,
		responses: responses,
	}
}

// FailAt makes the nth call (1-based) return the given error.
func (p *ScriptedProvider) FailAt(n int, err error) *ScriptedProvider {
	for len(p.errs) < n {
		p.errs = append(p.errs, nil)
	}
	p.errs[n-1] = err
	return p
}

// Name returns the provider name
func (p *ScriptedProvider) Name() string {
	return p.name
}

// Generate records the request and returns the next scripted response
func (p *ScriptedProvider) Generate(_ context.Context, req GenerateRequest) (string, error) {
	p.Requests = append(p.Requests, req)
	call := len(p.Requests)

	if call <= len(p.errs) && p.errs[call-1] != nil {
		return "", p.errs[call-1]
	}

	if len(p.responses) == 0 {
		return "", nil
	}
	idx := call - 1
	if idx >= len(p.responses) {
		idx = len(p.responses) - 1
	}
	return p.responses[idx], nil
}

// CallCount returns how many times Generate has been invoked
func (p *ScriptedProvider) CallCount() int {
	return len(p.Requests)
}
