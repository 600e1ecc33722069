// Package transcriber converts audio recordings into text through a
// hosted speech-to-text service.
package transcriber

import (
	"context"
	"errors"
)

// Transcript statuses as reported to callers.
const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusError      = "error"
)

var (
	ErrTranscriptionFailed = errors.New("transcription failed")
	ErrTranscriptNotFound  = errors.New("transcript not found")
)

// Transcript holds the state of one transcription job.
type Transcript struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Text   string `json:"text,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Done reports whether the job has reached a terminal status.
func (t *Transcript) Done() bool {
	return t.Status == StatusCompleted || t.Status == StatusError
}

// Transcriber defines the interface for audio transcription services.
type Transcriber interface {
	// TranscribeFile uploads the audio file, starts a transcription
	// job and blocks until it completes or the context is canceled.
	TranscribeFile(ctx context.Context, audioPath string) (*Transcript, error)

	// StartTranscription uploads the audio file and starts a job
	// without waiting; the returned transcript carries the job ID.
	StartTranscription(ctx context.Context, audioPath string) (*Transcript, error)

	// GetTranscript fetches the current state of a transcription job.
	GetTranscript(ctx context.Context, transcriptID string) (*Transcript, error)

	// Name returns the service name.
	Name() string
}
