package notestore

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"crawshaw.io/sqlite"

	"github.com/notetakerai/notetaker/internal/vector"
)

// SQLiteNoteStore is an implementation of NoteStore that uses SQLite.
type SQLiteNoteStore struct {
	conn   *sqlite.Conn
	dbPath string
}

// NewSQLiteNoteStore creates a new SQLiteNoteStore instance.
func NewSQLiteNoteStore() *SQLiteNoteStore {
	return &SQLiteNoteStore{}
}

// Initialize initializes the store with the given database path.
func (s *SQLiteNoteStore) Initialize(dbPath string) error {
	s.dbPath = dbPath

	conn, err := sqlite.OpenConn(dbPath, sqlite.SQLITE_OPEN_CREATE|sqlite.SQLITE_OPEN_READWRITE)
	if err != nil {
		return fmt.Errorf("failed to open SQLite database: %w", err)
	}
	s.conn = conn

	if err := s.createTables(); err != nil {
		s.conn.Close()
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

// createTables creates the transcriptions and notes tables if they don't exist.
func (s *SQLiteNoteStore) createTables() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS transcriptions (
			id TEXT PRIMARY KEY,
			text TEXT NOT NULL,
			status TEXT NOT NULL,
			error TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS notes (
			id TEXT PRIMARY KEY,
			transcription_id TEXT NOT NULL,
			summary TEXT NOT NULL,
			action_items TEXT NOT NULL DEFAULT '[]',
			embedding BLOB NOT NULL,
			created_at INTEGER NOT NULL
		);`,
	}

	for _, createSQL := range statements {
		if err := s.exec(createSQL); err != nil {
			return err
		}
	}
	return nil
}

// exec prepares and runs a statement that returns no rows.
func (s *SQLiteNoteStore) exec(sql string) error {
	stmt, err := s.conn.Prepare(sql)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Reset()

	if _, err := stmt.Step(); err != nil {
		return fmt.Errorf("failed to execute statement: %w", err)
	}
	return nil
}

// Close closes the store and releases any resources.
func (s *SQLiteNoteStore) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// SaveTranscription inserts or replaces a transcription record.
func (s *SQLiteNoteStore) SaveTranscription(record *TranscriptionRecord) error {
	insertSQL := `
	INSERT OR REPLACE INTO transcriptions (id, text, status, error, created_at)
	VALUES (?, ?, ?, ?, ?);`

	stmt, err := s.conn.Prepare(insertSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Reset()

	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	stmt.BindText(1, record.ID)
	stmt.BindText(2, record.Text)
	stmt.BindText(3, record.Status)
	stmt.BindText(4, record.Error)
	stmt.BindInt64(5, createdAt.Unix())

	if _, err := stmt.Step(); err != nil {
		return fmt.Errorf("failed to insert transcription: %w", err)
	}
	return nil
}

// GetTranscription retrieves a transcription by ID.
func (s *SQLiteNoteStore) GetTranscription(id string) (*TranscriptionRecord, error) {
	selectSQL := `
	SELECT id, text, status, error, created_at FROM transcriptions WHERE id = ?;`

	stmt, err := s.conn.Prepare(selectSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Reset()

	stmt.BindText(1, id)

	hasRow, err := stmt.Step()
	if err != nil {
		return nil, fmt.Errorf("failed to execute select statement: %w", err)
	}
	if !hasRow {
		return nil, fmt.Errorf("transcription %s: %w", id, ErrNotFound)
	}

	return &TranscriptionRecord{
		ID:        stmt.ColumnText(0),
		Text:      stmt.ColumnText(1),
		Status:    stmt.ColumnText(2),
		Error:     stmt.ColumnText(3),
		CreatedAt: time.Unix(stmt.ColumnInt64(4), 0),
	}, nil
}

// SaveNote inserts or replaces a note along with its summary embedding.
func (s *SQLiteNoteStore) SaveNote(note *Note, embedding []byte) error {
	actionItemsJSON, err := json.Marshal(note.ActionItems)
	if err != nil {
		return fmt.Errorf("failed to marshal action items: %w", err)
	}

	insertSQL := `
	INSERT OR REPLACE INTO notes (id, transcription_id, summary, action_items, embedding, created_at)
	VALUES (?, ?, ?, ?, ?, ?);`

	stmt, err := s.conn.Prepare(insertSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Reset()

	createdAt := note.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	stmt.BindText(1, note.ID)
	stmt.BindText(2, note.TranscriptionID)
	stmt.BindText(3, note.Summary)
	stmt.BindText(4, string(actionItemsJSON))
	stmt.BindBytes(5, embedding)
	stmt.BindInt64(6, createdAt.Unix())

	if _, err := stmt.Step(); err != nil {
		return fmt.Errorf("failed to insert note: %w", err)
	}
	return nil
}

// GetNote retrieves a note by ID.
func (s *SQLiteNoteStore) GetNote(id string) (*Note, error) {
	selectSQL := `
	SELECT id, transcription_id, summary, action_items, created_at
	FROM notes WHERE id = ?;`

	stmt, err := s.conn.Prepare(selectSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Reset()

	stmt.BindText(1, id)

	hasRow, err := stmt.Step()
	if err != nil {
		return nil, fmt.Errorf("failed to execute select statement: %w", err)
	}
	if !hasRow {
		return nil, fmt.Errorf("note %s: %w", id, ErrNotFound)
	}

	return scanNote(stmt)
}

// ListNotes returns the most recent notes, newest first.
func (s *SQLiteNoteStore) ListNotes(limit int) ([]*Note, error) {
	selectSQL := `
	SELECT id, transcription_id, summary, action_items, created_at
	FROM notes ORDER BY created_at DESC LIMIT ?;`

	stmt, err := s.conn.Prepare(selectSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Reset()

	if limit <= 0 {
		limit = -1 // SQLite treats a negative LIMIT as no limit
	}
	stmt.BindInt64(1, int64(limit))

	var notes []*Note
	for {
		hasRow, err := stmt.Step()
		if err != nil {
			return nil, fmt.Errorf("failed to execute select statement: %w", err)
		}
		if !hasRow {
			break
		}

		note, err := scanNote(stmt)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}

	return notes, nil
}

// SearchNotes scores every stored note against the query embedding by
// cosine similarity and returns the best matches first.
func (s *SQLiteNoteStore) SearchNotes(queryEmbedding []float32, limit int) ([]*Note, error) {
	selectSQL := `
	SELECT id, transcription_id, summary, action_items, created_at, embedding
	FROM notes ORDER BY created_at DESC;`

	stmt, err := s.conn.Prepare(selectSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Reset()

	type scoredNote struct {
		note       *Note
		similarity float64
	}
	var results []scoredNote

	for {
		hasRow, err := stmt.Step()
		if err != nil {
			return nil, fmt.Errorf("failed to execute select statement: %w", err)
		}
		if !hasRow {
			break
		}

		note, err := scanNote(stmt)
		if err != nil {
			return nil, err
		}

		embeddingLen := stmt.ColumnLen(5)
		embeddingBytes := make([]byte, embeddingLen)
		stmt.ColumnBytes(5, embeddingBytes)

		storedEmbedding, err := vector.BytesToFloat32Slice(embeddingBytes)
		if err != nil {
			return nil, fmt.Errorf("failed to convert embedding bytes for note %s: %w", note.ID, err)
		}

		similarity, err := vector.CosineSimilarity(queryEmbedding, storedEmbedding)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate similarity for note %s: %w", note.ID, err)
		}

		results = append(results, scoredNote{note: note, similarity: similarity})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].similarity > results[j].similarity
	})

	if limit <= 0 || limit > len(results) {
		limit = len(results)
	}

	top := make([]*Note, limit)
	for i := 0; i < limit; i++ {
		top[i] = results[i].note
	}
	return top, nil
}

// DeleteNote removes a note by ID.
func (s *SQLiteNoteStore) DeleteNote(id string) error {
	deleteSQL := `DELETE FROM notes WHERE id = ?;`

	stmt, err := s.conn.Prepare(deleteSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare delete statement: %w", err)
	}
	defer stmt.Reset()

	stmt.BindText(1, id)

	if _, err := stmt.Step(); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	if s.conn.Changes() == 0 {
		return fmt.Errorf("note %s: %w", id, ErrNotFound)
	}
	return nil
}

// Clear removes all transcriptions and notes.
func (s *SQLiteNoteStore) Clear() error {
	for _, deleteSQL := range []string{
		`DELETE FROM notes;`,
		`DELETE FROM transcriptions;`,
	} {
		if err := s.exec(deleteSQL); err != nil {
			return err
		}
	}
	return nil
}

// scanNote reads a note from the current row. Column order must be
// id, transcription_id, summary, action_items, created_at.
func scanNote(stmt *sqlite.Stmt) (*Note, error) {
	note := &Note{
		ID:              stmt.ColumnText(0),
		TranscriptionID: stmt.ColumnText(1),
		Summary:         stmt.ColumnText(2),
		CreatedAt:       time.Unix(stmt.ColumnInt64(4), 0),
	}

	actionItemsJSON := stmt.ColumnText(3)
	if actionItemsJSON != "" {
		if err := json.Unmarshal([]byte(actionItemsJSON), &note.ActionItems); err != nil {
			return nil, fmt.Errorf("failed to unmarshal action items for note %s: %w", note.ID, err)
		}
	}

	return note, nil
}
