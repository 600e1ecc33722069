package transcriber

import (
	"context"
)

// StubTranscriber is a Transcriber for tests. It returns the configured
// transcript or error on every call.
type StubTranscriber struct {
	Transcript *Transcript
	Err        error
}

// NewStubTranscriber creates a stub that always completes with text.
func NewStubTranscriber(text string) *StubTranscriber {
	return &StubTranscriber{
		Transcript: &Transcript{
			ID:     "stub-transcript",
			Status: StatusCompleted,
			Text:   text,
		},
	}
}

// Name returns the service name
func (s *StubTranscriber) Name() string {
	return "stub"
}

// TranscribeFile returns the configured transcript or error
func (s *StubTranscriber) TranscribeFile(_ context.Context, _ string) (*Transcript, error) {
	return s.Transcript, s.Err
}

// StartTranscription returns the configured transcript or error
func (s *StubTranscriber) StartTranscription(_ context.Context, _ string) (*Transcript, error) {
	return s.Transcript, s.Err
}

// GetTranscript returns the configured transcript or error
func (s *StubTranscriber) GetTranscript(_ context.Context, _ string) (*Transcript, error) {
	return s.Transcript, s.Err
}
