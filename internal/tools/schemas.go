// Package tools defines the MCP tool names and request/response
// schemas for the notetaker service.
package tools

const (
	// ToolTranscribeAudio is the name of the transcribe_audio MCP tool
	ToolTranscribeAudio = "transcribe_audio"

	// ToolGetTranscription is the name of the get_transcription MCP tool
	ToolGetTranscription = "get_transcription"

	// ToolSummarizeTranscription is the name of the summarize_transcription MCP tool
	ToolSummarizeTranscription = "summarize_transcription"

	// ToolExtractActionItems is the name of the extract_action_items MCP tool
	ToolExtractActionItems = "extract_action_items"

	// ToolGetNotes is the name of the get_notes MCP tool
	ToolGetNotes = "get_notes"

	// ToolSearchNotes is the name of the search_notes MCP tool
	ToolSearchNotes = "search_notes"

	// ToolDeleteNote is the name of the delete_note MCP tool
	ToolDeleteNote = "delete_note"

	// ToolClearAllNotes is the name of the clear_all_notes MCP tool
	ToolClearAllNotes = "clear_all_notes"

	// DefaultSearchLimit is the default number of results for a
	// search_notes request that specifies no limit
	DefaultSearchLimit = 5

	// DefaultListLimit is the default number of notes for a get_notes
	// request that specifies no limit
	DefaultListLimit = 10
)

// NoteSummary is the wire representation of a stored note.
type NoteSummary struct {
	// ID is the unique identifier of the note
	ID string `json:"id"`

	// TranscriptionID links the note back to its transcription
	TranscriptionID string `json:"transcription_id,omitempty"`

	// Summary is the structured summary text
	Summary string `json:"summary"`

	// ActionItems are the deduplicated action items of the note
	ActionItems []string `json:"action_items"`

	// CreatedAt is the note creation time in RFC 3339 format
	CreatedAt string `json:"created_at"`
}

// TranscribeAudioRequest defines the input schema for transcribe_audio tool
type TranscribeAudioRequest struct {
	// AudioPath is the path to the audio file to transcribe
	AudioPath string `json:"audio_path"`

	// Wait makes the call block until the transcription finishes.
	// When false the tool returns immediately with a transcription ID
	// to poll through get_transcription.
	Wait bool `json:"wait,omitempty"`
}

// TranscribeAudioResponse defines the output schema for transcribe_audio tool
type TranscribeAudioResponse struct {
	// Status indicates the result of the operation ("success" or "error")
	Status string `json:"status"`

	// TranscriptionID identifies the transcription job
	TranscriptionID string `json:"transcription_id,omitempty"`

	// TranscriptionStatus is the job status (processing, completed, error)
	TranscriptionStatus string `json:"transcription_status,omitempty"`

	// Text is the transcribed text when the job completed
	Text string `json:"text,omitempty"`

	// Error contains an error message if Status is "error"
	Error string `json:"error,omitempty"`
}

// GetTranscriptionRequest defines the input schema for get_transcription tool
type GetTranscriptionRequest struct {
	// TranscriptionID is the job identifier returned by transcribe_audio
	TranscriptionID string `json:"transcription_id"`
}

// GetTranscriptionResponse defines the output schema for get_transcription tool
type GetTranscriptionResponse struct {
	// Status indicates the result of the operation ("success" or "error")
	Status string `json:"status"`

	// TranscriptionStatus is the job status (processing, completed, error)
	TranscriptionStatus string `json:"transcription_status,omitempty"`

	// Text is the transcribed text when the job completed
	Text string `json:"text,omitempty"`

	// Error contains an error message if Status is "error"
	Error string `json:"error,omitempty"`
}

// SummarizeTranscriptionRequest defines the input schema for summarize_transcription tool.
// Exactly one of TranscriptionID or Text must be set.
type SummarizeTranscriptionRequest struct {
	// TranscriptionID selects a stored transcription to summarize
	TranscriptionID string `json:"transcription_id,omitempty"`

	// Text is raw transcription text to summarize directly
	Text string `json:"text,omitempty"`
}

// SummarizeTranscriptionResponse defines the output schema for summarize_transcription tool
type SummarizeTranscriptionResponse struct {
	// Status indicates the result of the operation ("success" or "error")
	Status string `json:"status"`

	// NoteID is the identifier of the saved note
	NoteID string `json:"note_id,omitempty"`

	// Summary is the structured summary of the transcription
	Summary string `json:"summary,omitempty"`

	// ActionItems are the deduplicated action items found in the transcription
	ActionItems []string `json:"action_items"`

	// Error contains an error message if Status is "error"
	Error string `json:"error,omitempty"`
}

// ExtractActionItemsRequest defines the input schema for extract_action_items tool.
// Exactly one of TranscriptionID or Text must be set.
type ExtractActionItemsRequest struct {
	// TranscriptionID selects a stored transcription
	TranscriptionID string `json:"transcription_id,omitempty"`

	// Text is raw transcription text to extract from directly
	Text string `json:"text,omitempty"`
}

// ExtractActionItemsResponse defines the output schema for extract_action_items tool
type ExtractActionItemsResponse struct {
	// Status indicates the result of the operation ("success" or "error")
	Status string `json:"status"`

	// ActionItems are the deduplicated action items, in first-seen order
	ActionItems []string `json:"action_items"`

	// Error contains an error message if Status is "error"
	Error string `json:"error,omitempty"`
}

// GetNotesRequest defines the input schema for get_notes tool
type GetNotesRequest struct {
	// Limit is the maximum number of notes to return.
	// If not specified, DefaultListLimit will be used.
	Limit int `json:"limit,omitempty"`
}

// GetNotesResponse defines the output schema for get_notes tool
type GetNotesResponse struct {
	// Status indicates the result of the operation ("success" or "error")
	Status string `json:"status"`

	// Notes contains the most recent notes, newest first
	Notes []NoteSummary `json:"notes"`

	// Error contains an error message if Status is "error"
	Error string `json:"error,omitempty"`
}

// SearchNotesRequest defines the input schema for search_notes tool
type SearchNotesRequest struct {
	// Query is the text to search for across stored notes
	Query string `json:"query"`

	// Limit is the maximum number of results to return.
	// If not specified, DefaultSearchLimit will be used.
	Limit int `json:"limit,omitempty"`
}

// SearchNotesResponse defines the output schema for search_notes tool
type SearchNotesResponse struct {
	// Status indicates the result of the operation ("success" or "error")
	Status string `json:"status"`

	// Notes contains the matching notes, best match first
	Notes []NoteSummary `json:"notes"`

	// Error contains an error message if Status is "error"
	Error string `json:"error,omitempty"`
}

// DeleteNoteRequest defines the input schema for delete_note tool
type DeleteNoteRequest struct {
	// ID is the unique identifier of the note to delete
	ID string `json:"id"`
}

// DeleteNoteResponse defines the output schema for delete_note tool
type DeleteNoteResponse struct {
	// Status indicates the result of the operation ("success" or "error")
	Status string `json:"status"`

	// Error contains an error message if Status is "error"
	Error string `json:"error,omitempty"`
}

// ClearAllNotesRequest defines the input schema for clear_all_notes tool
type ClearAllNotesRequest struct {
	// Confirmation must be set to "confirm" to prevent accidental clearing
	Confirmation string `json:"confirmation"`
}

// ClearAllNotesResponse defines the output schema for clear_all_notes tool
type ClearAllNotesResponse struct {
	// Status indicates the result of the operation ("success" or "error")
	Status string `json:"status"`

	// Error contains an error message if Status is "error"
	Error string `json:"error,omitempty"`
}
