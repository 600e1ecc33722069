// Package notetaker wires the transcription, summarization and note
// storage components into an MCP service.
package notetaker

import (
	"context"
	"log/slog"
	"time"

	"github.com/notetakerai/notetaker/internal/config"
	"github.com/notetakerai/notetaker/internal/errortypes"
	"github.com/notetakerai/notetaker/internal/notestore"
	"github.com/notetakerai/notetaker/internal/server"
	"github.com/notetakerai/notetaker/internal/summarizer"
	"github.com/notetakerai/notetaker/internal/transcriber"
	"github.com/notetakerai/notetaker/internal/util"
	"github.com/notetakerai/notetaker/internal/vector"
)

// Config represents the configuration for the notetaker service.
type Config = config.Config

// Server represents the notetaker service.
type Server struct {
	config      *config.Config
	store       notestore.NoteStore
	summarizer  summarizer.Summarizer
	transcriber transcriber.Transcriber
	embedder    vector.Embedder
	toolServer  server.NoteToolServer
	logger      *slog.Logger
}

// ServerOptions defines the options for creating a new Server.
type ServerOptions struct {
	Config     *Config      // Pre-filled config. If nil, ConfigPath is used.
	ConfigPath string       // Path to config file. Used if Config is nil. If both are empty, DefaultConfig() is used.
	Logger     *slog.Logger // External logger. If nil, slog.Default() is used.
}

// NewServer creates a new notetaker Server with the given options.
// If opts.Config is provided, it will be used directly. Otherwise, if
// opts.ConfigPath is provided, configuration will be loaded from that
// path. If neither is provided, DefaultConfig() will be used.
func NewServer(opts ServerOptions) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var cfg *Config
	var err error

	if opts.Config != nil {
		cfg = opts.Config
		logger.Info("Using provided Config object for server initialization")
	} else if opts.ConfigPath != "" {
		logger.Info("Loading configuration for server initialization", "path", opts.ConfigPath)
		cfg, err = config.LoadConfigWithPath(opts.ConfigPath)
		if err != nil {
			logger.Error("Failed to load configuration from path", "path", opts.ConfigPath, "error", err)
			return nil, errortypes.ConfigError(err, "Failed to load configuration from path: "+opts.ConfigPath)
		}
	} else {
		logger.Warn("No Config object or ConfigPath provided, using default configuration for server initialization")
		cfg = DefaultConfig()
	}

	store, sum, trans, emb, err := CreateComponents(cfg, logger)
	if err != nil {
		logger.Error("Failed to create components during server initialization", "error", err)
		return nil, err
	}

	logger.Info("Initializing note tool server component")
	mcpServer := server.NewNoteToolServer(store, sum, trans, emb)
	if err := mcpServer.Initialize(); err != nil {
		logger.Error("Failed to initialize MCP note tool server component", "error", err)
		return nil, errortypes.ConfigError(err, "Failed to initialize MCP note tool server component")
	}

	logger.Info("Notetaker server successfully initialized")
	return &Server{
		config:      cfg,
		store:       store,
		summarizer:  sum,
		transcriber: trans,
		embedder:    emb,
		toolServer:  mcpServer,
		logger:      logger,
	}, nil
}

// DefaultConfig returns the default configuration for the notetaker service.
func DefaultConfig() *Config {
	return config.NewConfig()
}

// Start starts the notetaker service.
func (s *Server) Start() error {
	s.logger.Info("Starting notetaker service")
	return s.toolServer.Start()
}

// Stop stops the notetaker service.
func (s *Server) Stop() error {
	s.logger.Info("Stopping notetaker service")
	if err := s.toolServer.Stop(); err != nil {
		s.logger.Error("Error stopping tool server", "error", err)
		return err
	}

	s.logger.Info("Closing store")
	if err := s.store.Close(); err != nil {
		s.logger.Error("Failed to close store", "error", err)
		return err
	}

	s.logger.Info("Notetaker service stopped")
	return nil
}

// Transcribe uploads an audio file and blocks until the transcription
// completes, persisting the result.
func (s *Server) Transcribe(ctx context.Context, audioPath string) (*transcriber.Transcript, error) {
	s.logger.Debug("Transcribing audio file", "path", audioPath)
	transcript, err := s.transcriber.TranscribeFile(ctx, audioPath)
	if err != nil {
		s.logger.Error("Failed to transcribe audio file", "path", audioPath, "error", err)
		return nil, err
	}

	record := &notestore.TranscriptionRecord{
		ID:        transcript.ID,
		Text:      transcript.Text,
		Status:    transcript.Status,
		Error:     transcript.Error,
		CreatedAt: time.Now(),
	}
	if err := s.store.SaveTranscription(record); err != nil {
		s.logger.Error("Failed to store transcription", "id", transcript.ID, "error", err)
		return nil, err
	}

	s.logger.Info("Transcription complete", "id", transcript.ID, "status", transcript.Status)
	return transcript, nil
}

// SaveNote summarizes the given transcription text, extracts its action
// items and persists the result as a searchable note. It returns the
// stored note.
func (s *Server) SaveNote(text string) (*notestore.Note, error) {
	s.logger.Debug("Generating summary of text", "length", len(text))
	summary, err := s.summarizer.Summarize(text)
	if err != nil {
		s.logger.Error("Failed to summarize text", "error", err)
		return nil, err
	}

	actionItems, err := s.summarizer.ExtractActionItems(text)
	if err != nil {
		s.logger.Error("Failed to extract action items", "error", err)
		return nil, err
	}

	s.logger.Debug("Creating embedding for summary")
	embedding, err := s.embedder.CreateEmbedding(summary)
	if err != nil {
		s.logger.Error("Failed to create embedding", "error", err)
		return nil, err
	}

	embeddingBytes, err := vector.Float32SliceToBytes(embedding)
	if err != nil {
		s.logger.Error("Failed to convert embedding to bytes", "error", err)
		return nil, err
	}

	now := time.Now()
	note := &notestore.Note{
		ID:          util.NewID(summary, now),
		Summary:     summary,
		ActionItems: actionItems,
		CreatedAt:   now,
	}

	s.logger.Debug("Storing note", "id", note.ID)
	if err := s.store.SaveNote(note, embeddingBytes); err != nil {
		s.logger.Error("Failed to store note", "id", note.ID, "error", err)
		return nil, err
	}

	s.logger.Info("Successfully saved note", "id", note.ID)
	return note, nil
}

// ListNotes returns the most recent notes, newest first.
func (s *Server) ListNotes(limit int) ([]*notestore.Note, error) {
	notes, err := s.store.ListNotes(limit)
	if err != nil {
		s.logger.Error("Failed to list notes", "limit", limit, "error", err)
		return nil, err
	}
	return notes, nil
}

// SearchNotes retrieves the notes most similar to the given query.
func (s *Server) SearchNotes(query string, limit int) ([]*notestore.Note, error) {
	s.logger.Debug("Creating embedding for query", "query", query)
	queryEmbedding, err := s.embedder.CreateEmbedding(query)
	if err != nil {
		s.logger.Error("Failed to create embedding for query", "query", query, "error", err)
		return nil, err
	}

	s.logger.Debug("Searching for similar notes", "limit", limit)
	results, err := s.store.SearchNotes(queryEmbedding, limit)
	if err != nil {
		s.logger.Error("Failed to search note store", "limit", limit, "error", err)
		return nil, err
	}

	s.logger.Info("Retrieved notes", "count", len(results))
	return results, nil
}

// GetStore returns the note store instance used by the server.
func (s *Server) GetStore() notestore.NoteStore {
	return s.store
}

// GetSummarizer returns the summarizer instance used by the server.
func (s *Server) GetSummarizer() summarizer.Summarizer {
	return s.summarizer
}

// GetTranscriber returns the transcriber instance used by the server.
func (s *Server) GetTranscriber() transcriber.Transcriber {
	return s.transcriber
}

// GetEmbedder returns the embedder instance used by the server.
func (s *Server) GetEmbedder() vector.Embedder {
	return s.embedder
}

// CreateComponents creates and initializes the components of the
// notetaker service without creating a server instance. This is useful
// for callers that need direct access to the store, summarizer,
// transcriber and embedder.
func CreateComponents(cfg *Config, logger *slog.Logger) (notestore.NoteStore, summarizer.Summarizer, transcriber.Transcriber, vector.Embedder, error) {
	if logger == nil {
		logger = slog.Default()
	}

	// Initialize SQLite note store
	logger.Info("Initializing SQLite note store", "path", cfg.Store.SQLitePath)
	store := notestore.NewSQLiteNoteStore()
	if err := store.Initialize(cfg.Store.SQLitePath); err != nil {
		logger.Error("Failed to initialize SQLite note store", "path", cfg.Store.SQLitePath, "error", err)
		return nil, nil, nil, nil, errortypes.DatabaseError(err, "Failed to initialize SQLite note store")
	}

	// Initialize summarizer
	logger.Info("Initializing summarizer", "provider", cfg.Summarizer.Provider)
	var sum summarizer.Summarizer
	switch cfg.Summarizer.Provider {
	case "basic", "":
		sum = summarizer.NewBasicSummarizer(summarizer.DefaultBasicSummaryLength)
	default:
		sum = summarizer.NewAISummarizer(&summarizer.AISummarizerConfig{
			ProviderName: cfg.Summarizer.Provider,
			ModelID:      cfg.Summarizer.ModelID,
			APIKey:       cfg.Summarizer.ApiKey,
			ChunkBudget:  cfg.Summarizer.ChunkBudget,
		})
	}

	if err := sum.Initialize(); err != nil {
		logger.Error("Failed to initialize summarizer", "error", err)
		return nil, nil, nil, nil, errortypes.ConfigError(err, "Failed to initialize summarizer")
	}

	// Initialize transcriber
	logger.Info("Initializing transcriber", "provider", cfg.Transcriber.Provider)
	var trans transcriber.Transcriber
	switch cfg.Transcriber.Provider {
	case transcriber.ProviderAssemblyAI, "":
		trans = transcriber.NewAssemblyAIClient(transcriber.Config{
			APIKey: cfg.Transcriber.ApiKey,
		})
	default:
		logger.Warn("Unknown transcriber provider, using AssemblyAI", "provider", cfg.Transcriber.Provider)
		trans = transcriber.NewAssemblyAIClient(transcriber.Config{
			APIKey: cfg.Transcriber.ApiKey,
		})
	}

	// Initialize embedder
	logger.Info("Initializing embedder", "provider", cfg.Embedder.Provider, "dimensions", cfg.Embedder.Dimensions)
	var emb vector.Embedder
	dimensions := cfg.Embedder.Dimensions
	if dimensions <= 0 {
		dimensions = vector.DefaultEmbeddingDimensions
	}

	switch cfg.Embedder.Provider {
	case "openai":
		emb = vector.NewOpenAIEmbedder(vector.OpenAIEmbedderConfig{
			APIKey: cfg.Embedder.ApiKey,
			Model:  cfg.Embedder.Model,
		})
	case "mock", "":
		emb = vector.NewMockEmbedder(dimensions)
	default:
		logger.Warn("Unknown embedder provider, using mock embedder", "provider", cfg.Embedder.Provider)
		emb = vector.NewMockEmbedder(dimensions)
	}

	if err := emb.Initialize(); err != nil {
		logger.Error("Failed to initialize embedder", "error", err)
		return nil, nil, nil, nil, errortypes.ConfigError(err, "Failed to initialize embedder")
	}

	logger.Info("Components successfully initialized")
	return store, sum, trans, emb, nil
}
