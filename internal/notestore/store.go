// Package notestore provides storage interfaces and implementations for
// transcriptions and the notes derived from them.
package notestore

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a transcription or note does not exist.
var ErrNotFound = errors.New("not found")

// TranscriptionRecord is a stored transcription job result.
type TranscriptionRecord struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Note is a summarized transcription with its extracted action items.
type Note struct {
	ID              string    `json:"id"`
	TranscriptionID string    `json:"transcription_id"`
	Summary         string    `json:"summary"`
	ActionItems     []string  `json:"action_items"`
	CreatedAt       time.Time `json:"created_at"`
}

// NoteStore defines the interface for persisting transcriptions and notes.
type NoteStore interface {
	// Initialize initializes the store with configuration options.
	Initialize(dbPath string) error

	// Close closes the store and releases any resources.
	Close() error

	// SaveTranscription inserts or replaces a transcription record.
	SaveTranscription(record *TranscriptionRecord) error

	// GetTranscription retrieves a transcription by ID.
	GetTranscription(id string) (*TranscriptionRecord, error)

	// SaveNote inserts or replaces a note along with its summary embedding.
	SaveNote(note *Note, embedding []byte) error

	// GetNote retrieves a note by ID.
	GetNote(id string) (*Note, error)

	// ListNotes returns the most recent notes, newest first.
	ListNotes(limit int) ([]*Note, error)

	// SearchNotes returns the notes most similar to the query
	// embedding, best match first.
	SearchNotes(queryEmbedding []float32, limit int) ([]*Note, error)

	// DeleteNote removes a note by ID.
	DeleteNote(id string) error

	// Clear removes all transcriptions and notes.
	Clear() error
}
