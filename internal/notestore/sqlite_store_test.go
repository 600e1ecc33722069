package notestore

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/notetakerai/notetaker/internal/vector"
)

func newTestStore(t *testing.T) *SQLiteNoteStore {
	t.Helper()
	store := NewSQLiteNoteStore()
	dbPath := filepath.Join(t.TempDir(), "notes.db")
	if err := store.Initialize(dbPath); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustEmbed(t *testing.T, floats []float32) []byte {
	t.Helper()
	embedding, err := vector.Float32SliceToBytes(floats)
	if err != nil {
		t.Fatalf("Failed to encode embedding: %v", err)
	}
	return embedding
}

func TestSaveAndGetTranscription(t *testing.T) {
	store := newTestStore(t)

	record := &TranscriptionRecord{
		ID:        "tr-1",
		Text:      "We discussed the launch plan.",
		Status:    "completed",
		CreatedAt: time.Now(),
	}
	if err := store.SaveTranscription(record); err != nil {
		t.Fatalf("SaveTranscription failed: %v", err)
	}

	got, err := store.GetTranscription("tr-1")
	if err != nil {
		t.Fatalf("GetTranscription failed: %v", err)
	}
	if got.Text != record.Text {
		t.Errorf("Expected text '%s', got '%s'", record.Text, got.Text)
	}
	if got.Status != "completed" {
		t.Errorf("Expected completed status, got '%s'", got.Status)
	}
}

func TestGetTranscriptionNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetTranscription("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestSaveTranscriptionReplaces(t *testing.T) {
	store := newTestStore(t)

	if err := store.SaveTranscription(&TranscriptionRecord{ID: "tr-1", Text: "first", Status: "processing"}); err != nil {
		t.Fatalf("SaveTranscription failed: %v", err)
	}
	if err := store.SaveTranscription(&TranscriptionRecord{ID: "tr-1", Text: "final text", Status: "completed"}); err != nil {
		t.Fatalf("SaveTranscription failed: %v", err)
	}

	got, err := store.GetTranscription("tr-1")
	if err != nil {
		t.Fatalf("GetTranscription failed: %v", err)
	}
	if got.Text != "final text" || got.Status != "completed" {
		t.Errorf("Expected replaced record, got %+v", got)
	}
}

func TestSaveAndGetNote(t *testing.T) {
	store := newTestStore(t)

	note := &Note{
		ID:              "note-1",
		TranscriptionID: "tr-1",
		Summary:         "Launch plan summary.",
		ActionItems:     []string{"Call Bob", "Email Alice"},
		CreatedAt:       time.Now(),
	}
	if err := store.SaveNote(note, mustEmbed(t, []float32{0.1, 0.2, 0.3})); err != nil {
		t.Fatalf("SaveNote failed: %v", err)
	}

	got, err := store.GetNote("note-1")
	if err != nil {
		t.Fatalf("GetNote failed: %v", err)
	}
	if got.Summary != note.Summary {
		t.Errorf("Expected summary '%s', got '%s'", note.Summary, got.Summary)
	}
	if len(got.ActionItems) != 2 || got.ActionItems[0] != "Call Bob" {
		t.Errorf("Expected action items round-tripped, got %v", got.ActionItems)
	}
	if got.TranscriptionID != "tr-1" {
		t.Errorf("Expected transcription ID tr-1, got '%s'", got.TranscriptionID)
	}
}

func TestListNotesNewestFirst(t *testing.T) {
	store := newTestStore(t)

	base := time.Now().Add(-time.Hour)
	for i, id := range []string{"note-old", "note-mid", "note-new"} {
		note := &Note{
			ID:        id,
			Summary:   "Summary " + id,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := store.SaveNote(note, mustEmbed(t, []float32{1, 0})); err != nil {
			t.Fatalf("SaveNote failed: %v", err)
		}
	}

	notes, err := store.ListNotes(2)
	if err != nil {
		t.Fatalf("ListNotes failed: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("Expected 2 notes, got %d", len(notes))
	}
	if notes[0].ID != "note-new" || notes[1].ID != "note-mid" {
		t.Errorf("Expected newest first, got %s then %s", notes[0].ID, notes[1].ID)
	}
}

func TestSearchNotesRanksBySimilarity(t *testing.T) {
	store := newTestStore(t)

	entries := map[string][]float32{
		"note-match": {1, 0, 0},
		"note-near":  {0.9, 0.1, 0},
		"note-far":   {0, 0, 1},
	}
	for id, embedding := range entries {
		note := &Note{ID: id, Summary: "Summary " + id}
		if err := store.SaveNote(note, mustEmbed(t, embedding)); err != nil {
			t.Fatalf("SaveNote failed: %v", err)
		}
	}

	results, err := store.SearchNotes([]float32{1, 0, 0}, 2)
	if err != nil {
		t.Fatalf("SearchNotes failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].ID != "note-match" {
		t.Errorf("Expected best match first, got '%s'", results[0].ID)
	}
	if results[1].ID != "note-near" {
		t.Errorf("Expected near match second, got '%s'", results[1].ID)
	}
}

func TestDeleteNote(t *testing.T) {
	store := newTestStore(t)

	note := &Note{ID: "note-1", Summary: "To be removed."}
	if err := store.SaveNote(note, mustEmbed(t, []float32{1})); err != nil {
		t.Fatalf("SaveNote failed: %v", err)
	}

	if err := store.DeleteNote("note-1"); err != nil {
		t.Fatalf("DeleteNote failed: %v", err)
	}
	if _, err := store.GetNote("note-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}

	if err := store.DeleteNote("note-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for double delete, got %v", err)
	}
}

func TestClear(t *testing.T) {
	store := newTestStore(t)

	if err := store.SaveTranscription(&TranscriptionRecord{ID: "tr-1", Text: "text", Status: "completed"}); err != nil {
		t.Fatalf("SaveTranscription failed: %v", err)
	}
	if err := store.SaveNote(&Note{ID: "note-1", Summary: "s"}, mustEmbed(t, []float32{1})); err != nil {
		t.Fatalf("SaveNote failed: %v", err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	if _, err := store.GetTranscription("tr-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected transcriptions cleared, got %v", err)
	}
	notes, err := store.ListNotes(0)
	if err != nil {
		t.Fatalf("ListNotes failed: %v", err)
	}
	if len(notes) != 0 {
		t.Errorf("Expected no notes after clear, got %d", len(notes))
	}
}
