package server

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/localrivet/gomcp/server"

	"github.com/notetakerai/notetaker/internal/errortypes"
	"github.com/notetakerai/notetaker/internal/notestore"
	"github.com/notetakerai/notetaker/internal/summarizer"
	"github.com/notetakerai/notetaker/internal/tools"
	"github.com/notetakerai/notetaker/internal/transcriber"
	"github.com/notetakerai/notetaker/internal/util"
	"github.com/notetakerai/notetaker/internal/vector"
)

// Common server error types
var (
	ErrServerNotInitialized = errors.New("server not initialized")
	ErrMissingDependencies  = errors.New("one or more required dependencies are nil")
)

// MCPNoteToolServer implements the NoteToolServer interface for
// handling MCP tool calls around transcription, summarization and
// note search.
type MCPNoteToolServer struct {
	store       notestore.NoteStore
	summarizer  summarizer.Summarizer
	transcriber transcriber.Transcriber
	embedder    vector.Embedder
	mcpServer   server.Server
}

// NewNoteToolServer creates a new MCPNoteToolServer instance.
func NewNoteToolServer(store notestore.NoteStore, summarizer summarizer.Summarizer, transcriber transcriber.Transcriber, embedder vector.Embedder) *MCPNoteToolServer {
	return &MCPNoteToolServer{
		store:       store,
		summarizer:  summarizer,
		transcriber: transcriber,
		embedder:    embedder,
	}
}

// Initialize initializes the server with dependencies and configurations.
func (s *MCPNoteToolServer) Initialize() error {
	slog.Info("Initializing MCP Note Tool Server")

	if s.store == nil || s.summarizer == nil || s.transcriber == nil || s.embedder == nil {
		return errortypes.ConfigError(ErrMissingDependencies, "server initialization failed")
	}

	srv := server.NewServer("notetaker")

	srv = srv.Tool(tools.ToolTranscribeAudio, "Transcribe an audio file to text",
		s.handleTranscribeAudio)

	srv = srv.Tool(tools.ToolGetTranscription, "Get the status and text of a transcription job",
		s.handleGetTranscription)

	srv = srv.Tool(tools.ToolSummarizeTranscription, "Summarize a transcription and save it as a note",
		s.handleSummarizeTranscription)

	srv = srv.Tool(tools.ToolExtractActionItems, "Extract action items from a transcription",
		s.handleExtractActionItems)

	srv = srv.Tool(tools.ToolGetNotes, "List the most recent notes",
		s.handleGetNotes)

	srv = srv.Tool(tools.ToolSearchNotes, "Search notes by semantic similarity",
		s.handleSearchNotes)

	srv = srv.Tool(tools.ToolDeleteNote, "Delete a note by ID",
		s.handleDeleteNote)

	srv = srv.Tool(tools.ToolClearAllNotes, "Clear all notes and transcriptions from the store",
		s.handleClearAllNotes)

	s.mcpServer = srv
	slog.Info("MCP Note Tool Server initialized successfully", "tool_count", 8)
	return nil
}

// Start starts the MCP server on the specified transport.
func (s *MCPNoteToolServer) Start() error {
	if s.mcpServer == nil {
		return errortypes.ConfigError(ErrServerNotInitialized, "cannot start server")
	}

	slog.Info("Starting MCP Note Tool Server")

	stdioServer := s.mcpServer.AsStdio()
	return stdioServer.Run()
}

// Stop gracefully shuts down the MCP server.
func (s *MCPNoteToolServer) Stop() error {
	slog.Info("Stopping MCP Note Tool Server")
	// The server will exit when stdin is closed
	return nil
}

// handleTranscribeAudio handles the transcribe_audio MCP tool call.
func (s *MCPNoteToolServer) handleTranscribeAudio(ctx *server.Context, req tools.TranscribeAudioRequest) (tools.TranscribeAudioResponse, error) {
	slog.Info("Processing transcribe_audio request", "audio_path", req.AudioPath, "wait", req.Wait)

	response := tools.TranscribeAudioResponse{
		Status: "success",
	}

	if req.AudioPath == "" {
		err := errortypes.ValidationError(errors.New("audio_path cannot be empty"), "invalid transcribe_audio request")
		errortypes.LogError(nil, err)
		response.Status = "error"
		response.Error = errorString(err)
		return response, nil
	}

	var (
		transcript *transcriber.Transcript
		err        error
	)
	if req.Wait {
		transcript, err = s.transcriber.TranscribeFile(context.Background(), req.AudioPath)
	} else {
		transcript, err = s.transcriber.StartTranscription(context.Background(), req.AudioPath)
	}
	if err != nil {
		err = errortypes.TranscriptionError(err, "failed to transcribe audio").
			WithField("audio_path", req.AudioPath)
		errortypes.LogError(nil, err)

		response.Status = "error"
		response.Error = errorString(err)
		return response, nil
	}

	record := &notestore.TranscriptionRecord{
		ID:        transcript.ID,
		Text:      transcript.Text,
		Status:    transcript.Status,
		Error:     transcript.Error,
		CreatedAt: time.Now(),
	}
	if err := s.store.SaveTranscription(record); err != nil {
		err = errortypes.DatabaseError(err, "failed to store transcription").
			WithField("transcription_id", transcript.ID)
		errortypes.LogError(nil, err)

		response.Status = "error"
		response.Error = errorString(err)
		return response, nil
	}

	response.TranscriptionID = transcript.ID
	response.TranscriptionStatus = transcript.Status
	response.Text = transcript.Text
	slog.Info("Successfully processed transcription", "id", transcript.ID, "status", transcript.Status)

	return response, nil
}

// handleGetTranscription handles the get_transcription MCP tool call.
// A transcription still in flight is refreshed from the transcription
// service before it is returned.
func (s *MCPNoteToolServer) handleGetTranscription(ctx *server.Context, req tools.GetTranscriptionRequest) (tools.GetTranscriptionResponse, error) {
	slog.Info("Processing get_transcription request", "transcription_id", req.TranscriptionID)

	response := tools.GetTranscriptionResponse{
		Status: "success",
	}

	if req.TranscriptionID == "" {
		err := errortypes.ValidationError(errors.New("transcription_id cannot be empty"), "invalid get_transcription request")
		errortypes.LogError(nil, err)
		response.Status = "error"
		response.Error = errorString(err)
		return response, nil
	}

	record, err := s.store.GetTranscription(req.TranscriptionID)
	if err != nil {
		err = errortypes.DatabaseError(err, "failed to load transcription").
			WithField("transcription_id", req.TranscriptionID)
		errortypes.LogError(nil, err)

		response.Status = "error"
		response.Error = errorString(err)
		return response, nil
	}

	if record.Status == transcriber.StatusProcessing {
		transcript, err := s.transcriber.GetTranscript(context.Background(), record.ID)
		if err != nil {
			err = errortypes.TranscriptionError(err, "failed to refresh transcription status").
				WithField("transcription_id", record.ID)
			errortypes.LogError(nil, err)

			response.Status = "error"
			response.Error = errorString(err)
			return response, nil
		}

		record.Status = transcript.Status
		record.Text = transcript.Text
		record.Error = transcript.Error
		if err := s.store.SaveTranscription(record); err != nil {
			err = errortypes.DatabaseError(err, "failed to update transcription").
				WithField("transcription_id", record.ID)
			errortypes.LogError(nil, err)

			response.Status = "error"
			response.Error = errorString(err)
			return response, nil
		}
	}

	response.TranscriptionStatus = record.Status
	response.Text = record.Text
	if record.Status == transcriber.StatusError {
		response.Error = record.Error
	}

	return response, nil
}

// resolveText returns the transcription text for a request that carries
// either a transcription ID or raw text.
func (s *MCPNoteToolServer) resolveText(transcriptionID, text string) (string, error) {
	if (transcriptionID == "") == (text == "") {
		return "", errortypes.ValidationError(
			errors.New("exactly one of transcription_id or text must be set"),
			"invalid request")
	}
	if text != "" {
		return text, nil
	}

	record, err := s.store.GetTranscription(transcriptionID)
	if err != nil {
		return "", errortypes.DatabaseError(err, "failed to load transcription").
			WithField("transcription_id", transcriptionID)
	}
	if record.Status != transcriber.StatusCompleted {
		return "", errortypes.ValidationError(
			errors.New("transcription is not completed"),
			"transcription not ready").
			WithField("transcription_id", transcriptionID).
			WithField("transcription_status", record.Status)
	}
	return record.Text, nil
}

// handleSummarizeTranscription handles the summarize_transcription MCP
// tool call: summarize, extract action items, embed the summary and
// persist the result as a note.
func (s *MCPNoteToolServer) handleSummarizeTranscription(ctx *server.Context, req tools.SummarizeTranscriptionRequest) (tools.SummarizeTranscriptionResponse, error) {
	slog.Info("Processing summarize_transcription request",
		"transcription_id", req.TranscriptionID, "text_length", len(req.Text))

	response := tools.SummarizeTranscriptionResponse{
		Status:      "success",
		ActionItems: []string{},
	}

	text, err := s.resolveText(req.TranscriptionID, req.Text)
	if err != nil {
		errortypes.LogError(nil, err)
		response.Status = "error"
		response.Error = errorString(err)
		return response, nil
	}

	slog.Debug("Generating summary for summarize_transcription")
	summary, err := s.summarizer.Summarize(text)
	if err != nil {
		err = errortypes.APIError(err, "failed to summarize transcription").
			WithField("text_length", len(text))
		errortypes.LogError(nil, err)

		response.Status = "error"
		response.Error = errorString(err)
		return response, nil
	}

	slog.Debug("Extracting action items for summarize_transcription")
	actionItems, err := s.summarizer.ExtractActionItems(text)
	if err != nil {
		err = errortypes.APIError(err, "failed to extract action items").
			WithField("text_length", len(text))
		errortypes.LogError(nil, err)

		response.Status = "error"
		response.Error = errorString(err)
		return response, nil
	}

	slog.Debug("Creating embedding for summarize_transcription")
	embedding, err := s.embedder.CreateEmbedding(summary)
	if err != nil {
		err = errortypes.APIError(err, "failed to create embedding").
			WithField("summary_length", len(summary))
		errortypes.LogError(nil, err)

		response.Status = "error"
		response.Error = errorString(err)
		return response, nil
	}

	embeddingBytes, err := vector.Float32SliceToBytes(embedding)
	if err != nil {
		err = errortypes.InternalError(err, "failed to convert embedding to bytes").
			WithField("embedding_size", len(embedding))
		errortypes.LogError(nil, err)

		response.Status = "error"
		response.Error = errorString(err)
		return response, nil
	}

	now := time.Now()
	note := &notestore.Note{
		ID:              util.NewID(summary, now),
		TranscriptionID: req.TranscriptionID,
		Summary:         summary,
		ActionItems:     actionItems,
		CreatedAt:       now,
	}

	slog.Debug("Storing note for summarize_transcription", "id", note.ID)
	if err := s.store.SaveNote(note, embeddingBytes); err != nil {
		err = errortypes.DatabaseError(err, "failed to store note").
			WithField("note_id", note.ID)
		errortypes.LogError(nil, err)

		response.Status = "error"
		response.Error = errorString(err)
		return response, nil
	}

	response.NoteID = note.ID
	response.Summary = summary
	response.ActionItems = actionItems
	slog.Info("Successfully saved note", "id", note.ID, "action_items", len(actionItems))

	return response, nil
}

// handleExtractActionItems handles the extract_action_items MCP tool call.
func (s *MCPNoteToolServer) handleExtractActionItems(ctx *server.Context, req tools.ExtractActionItemsRequest) (tools.ExtractActionItemsResponse, error) {
	slog.Info("Processing extract_action_items request",
		"transcription_id", req.TranscriptionID, "text_length", len(req.Text))

	response := tools.ExtractActionItemsResponse{
		Status:      "success",
		ActionItems: []string{},
	}

	text, err := s.resolveText(req.TranscriptionID, req.Text)
	if err != nil {
		errortypes.LogError(nil, err)
		response.Status = "error"
		response.Error = errorString(err)
		return response, nil
	}

	actionItems, err := s.summarizer.ExtractActionItems(text)
	if err != nil {
		err = errortypes.APIError(err, "failed to extract action items").
			WithField("text_length", len(text))
		errortypes.LogError(nil, err)

		response.Status = "error"
		response.Error = errorString(err)
		return response, nil
	}

	response.ActionItems = actionItems
	slog.Info("Successfully extracted action items", "count", len(actionItems))

	return response, nil
}

// handleGetNotes handles the get_notes MCP tool call.
func (s *MCPNoteToolServer) handleGetNotes(ctx *server.Context, req tools.GetNotesRequest) (tools.GetNotesResponse, error) {
	slog.Info("Processing get_notes request", "limit", req.Limit)

	response := tools.GetNotesResponse{
		Status: "success",
		Notes:  []tools.NoteSummary{},
	}

	limit := req.Limit
	if limit <= 0 {
		limit = tools.DefaultListLimit
	}

	notes, err := s.store.ListNotes(limit)
	if err != nil {
		err = errortypes.DatabaseError(err, "failed to list notes").
			WithField("limit", limit)
		errortypes.LogError(nil, err)

		response.Status = "error"
		response.Error = errorString(err)
		return response, nil
	}

	response.Notes = notesToSummaries(notes)
	slog.Info("Successfully listed notes", "count", len(response.Notes))

	return response, nil
}

// handleSearchNotes handles the search_notes MCP tool call.
func (s *MCPNoteToolServer) handleSearchNotes(ctx *server.Context, req tools.SearchNotesRequest) (tools.SearchNotesResponse, error) {
	slog.Info("Processing search_notes request", "query", req.Query, "limit", req.Limit)

	response := tools.SearchNotesResponse{
		Status: "success",
		Notes:  []tools.NoteSummary{},
	}

	if req.Query == "" {
		err := errortypes.ValidationError(errors.New("query cannot be empty"), "invalid search_notes request")
		errortypes.LogError(nil, err)
		response.Status = "error"
		response.Error = errorString(err)
		return response, nil
	}

	limit := req.Limit
	if limit <= 0 {
		limit = tools.DefaultSearchLimit
	}

	slog.Debug("Creating embedding for query in search_notes")
	queryEmbedding, err := s.embedder.CreateEmbedding(req.Query)
	if err != nil {
		err = errortypes.APIError(err, "failed to create embedding for query").
			WithField("query", req.Query)
		errortypes.LogError(nil, err)

		response.Status = "error"
		response.Error = errorString(err)
		return response, nil
	}

	notes, err := s.store.SearchNotes(queryEmbedding, limit)
	if err != nil {
		err = errortypes.DatabaseError(err, "failed to search notes").
			WithField("limit", limit)
		errortypes.LogError(nil, err)

		response.Status = "error"
		response.Error = errorString(err)
		return response, nil
	}

	response.Notes = notesToSummaries(notes)
	slog.Info("Successfully searched notes", "count", len(response.Notes))

	return response, nil
}

// handleDeleteNote handles the delete_note MCP tool call.
func (s *MCPNoteToolServer) handleDeleteNote(ctx *server.Context, req tools.DeleteNoteRequest) (tools.DeleteNoteResponse, error) {
	slog.Info("Processing delete_note request", "id", req.ID)

	response := tools.DeleteNoteResponse{
		Status: "success",
	}

	if req.ID == "" {
		err := errortypes.ValidationError(errors.New("id cannot be empty"), "invalid delete_note request")
		errortypes.LogError(nil, err)
		response.Status = "error"
		response.Error = errorString(err)
		return response, nil
	}

	if err := s.store.DeleteNote(req.ID); err != nil {
		err = errortypes.DatabaseError(err, "failed to delete note").
			WithField("note_id", req.ID)
		errortypes.LogError(nil, err)

		response.Status = "error"
		response.Error = errorString(err)
		return response, nil
	}

	slog.Info("Successfully deleted note", "id", req.ID)

	return response, nil
}

// handleClearAllNotes handles the clear_all_notes MCP tool call.
func (s *MCPNoteToolServer) handleClearAllNotes(ctx *server.Context, req tools.ClearAllNotesRequest) (tools.ClearAllNotesResponse, error) {
	slog.Info("Processing clear_all_notes request")

	response := tools.ClearAllNotesResponse{
		Status: "success",
	}

	if req.Confirmation != "confirm" {
		response.Status = "error"
		response.Error = "Confirmation required. Set confirmation to 'confirm' to proceed with clearing all notes"
		slog.Warn("Clear all notes operation rejected: missing confirmation")
		return response, nil
	}

	if err := s.store.Clear(); err != nil {
		err = errortypes.DatabaseError(err, "failed to clear note store")
		errortypes.LogError(nil, err)

		response.Status = "error"
		response.Error = errorString(err)
		return response, nil
	}

	slog.Info("Successfully cleared all notes")

	return response, nil
}

// notesToSummaries converts stored notes to their wire representation.
func notesToSummaries(notes []*notestore.Note) []tools.NoteSummary {
	summaries := make([]tools.NoteSummary, 0, len(notes))
	for _, note := range notes {
		actionItems := note.ActionItems
		if actionItems == nil {
			actionItems = []string{}
		}
		summaries = append(summaries, tools.NoteSummary{
			ID:              note.ID,
			TranscriptionID: note.TranscriptionID,
			Summary:         note.Summary,
			ActionItems:     actionItems,
			CreatedAt:       note.CreatedAt.Format(time.RFC3339),
		})
	}
	return summaries
}
