package summarizer

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestSplitChunksSingleChunk(t *testing.T) {
	text := "A short transcription that fits in one chunk."
	chunks := SplitChunks(text, 100)

	if len(chunks) != 1 {
		t.Fatalf("Expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != text {
		t.Errorf("Expected chunk text to equal input, got '%s'", chunks[0].Text)
	}
	if chunks[0].Ordinal != 1 || chunks[0].Total != 1 {
		t.Errorf("Expected ordinal 1 of 1, got %d of %d", chunks[0].Ordinal, chunks[0].Total)
	}
}

func TestSplitChunksEmptyInput(t *testing.T) {
	chunks := SplitChunks("", 100)
	if len(chunks) != 1 {
		t.Fatalf("Expected 1 chunk for empty input, got %d", len(chunks))
	}
}

func TestSplitChunksParagraphGrouping(t *testing.T) {
	// 9 chars per paragraph; with a budget of 5 tokens (20 chars) the
	// first two paragraphs share a chunk and the third starts a new one.
	text := "aaaa bbbb\n\ncccc dddd\n\neeee ffff"
	chunks := SplitChunks(text, 5)

	if len(chunks) != 2 {
		t.Fatalf("Expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Text != "aaaa bbbb\n\ncccc dddd" {
		t.Errorf("Unexpected first chunk: '%s'", chunks[0].Text)
	}
	if chunks[1].Text != "eeee ffff" {
		t.Errorf("Unexpected second chunk: '%s'", chunks[1].Text)
	}
}

func TestSplitChunksSentenceFallback(t *testing.T) {
	// One paragraph over the budget splits at sentence boundaries.
	text := "Aaaa bbbb. Cccc dddd. Eeee ffff."
	chunks := SplitChunks(text, 5)

	if len(chunks) != 2 {
		t.Fatalf("Expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Text != "Aaaa bbbb. Cccc dddd." {
		t.Errorf("Unexpected first chunk: '%s'", chunks[0].Text)
	}
	if chunks[1].Text != "Eeee ffff." {
		t.Errorf("Unexpected second chunk: '%s'", chunks[1].Text)
	}
}

func TestSplitChunksOversizedSentenceKeptWhole(t *testing.T) {
	long := strings.Repeat("x", 50) + "."
	text := long + " Tail."
	chunks := SplitChunks(text, 5)

	if len(chunks) != 2 {
		t.Fatalf("Expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Text != long {
		t.Errorf("Expected oversized sentence kept whole, got '%s'", chunks[0].Text)
	}
	if EstimateTokens(chunks[0].Text) <= 5 {
		t.Error("Expected first chunk to exceed the budget")
	}
	if chunks[1].Text != "Tail." {
		t.Errorf("Unexpected second chunk: '%s'", chunks[1].Text)
	}
}

func TestSplitChunksLossless(t *testing.T) {
	var paragraphs []string
	for i := 1; i <= 20; i++ {
		paragraphs = append(paragraphs,
			fmt.Sprintf("Paragraph %d covers topic %d. It mentions a decision and a follow-up task. The speaker then moves on.", i, i))
	}
	text := strings.Join(paragraphs, "\n\n")

	chunks := SplitChunks(text, 30)
	if len(chunks) < 2 {
		t.Fatalf("Expected multiple chunks, got %d", len(chunks))
	}

	var joined []string
	for _, chunk := range chunks {
		joined = append(joined, chunk.Text)
	}
	got := strings.Join(strings.Fields(strings.Join(joined, " ")), " ")
	want := strings.Join(strings.Fields(text), " ")
	if got != want {
		t.Error("Concatenated chunks do not reproduce the input")
	}
}

func TestSplitChunksBudgetRespected(t *testing.T) {
	var sentences []string
	for i := 0; i < 50; i++ {
		sentences = append(sentences, "This sentence fills out the transcription with ordinary content.")
	}
	text := strings.Join(sentences, " ")

	budget := 40
	for _, chunk := range SplitChunks(text, budget) {
		if EstimateTokens(chunk.Text) > budget {
			t.Errorf("Chunk %d estimate %d exceeds budget %d",
				chunk.Ordinal, EstimateTokens(chunk.Text), budget)
		}
	}
}

func TestSplitChunksDeterministic(t *testing.T) {
	text := strings.Repeat("First sentence here. Second sentence here.\n\n", 30)
	first := SplitChunks(text, 20)
	second := SplitChunks(text, 20)

	if !reflect.DeepEqual(first, second) {
		t.Error("Expected identical chunking across calls")
	}
}

func TestSplitChunksOrdinals(t *testing.T) {
	text := strings.Repeat("A paragraph with enough words to matter here.\n\n", 20)
	chunks := SplitChunks(text, 20)

	for i, chunk := range chunks {
		if chunk.Ordinal != i+1 {
			t.Errorf("Chunk %d has ordinal %d", i, chunk.Ordinal)
		}
		if chunk.Total != len(chunks) {
			t.Errorf("Chunk %d has total %d, expected %d", i, chunk.Total, len(chunks))
		}
	}
}

func TestSplitSentences(t *testing.T) {
	sentences := splitSentences("One. Two! Three? Four")
	expected := []string{"One.", "Two!", "Three?", "Four"}
	if !reflect.DeepEqual(sentences, expected) {
		t.Errorf("Expected %v, got %v", expected, sentences)
	}
}

func TestSplitSentencesNoBoundary(t *testing.T) {
	sentences := splitSentences("no terminators at all")
	if len(sentences) != 1 || sentences[0] != "no terminators at all" {
		t.Errorf("Expected single sentence, got %v", sentences)
	}
}
