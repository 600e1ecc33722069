package summarizer

import (
	"regexp"
	"strings"
)

// Chunk is one piece of a transcription produced by SplitChunks.
// Ordinal is 1-based and Total is the same for every chunk of a split.
type Chunk struct {
	Text    string
	Ordinal int
	Total   int
}

// ChunkSummary pairs a chunk's ordinal with the summary generated for it.
type ChunkSummary struct {
	Ordinal int
	Text    string
}

// paragraphSeparator matches a blank line: a newline, optional
// whitespace, and another newline. Runs of blank lines collapse into a
// single separator.
var paragraphSeparator = regexp.MustCompile(`\n\s*\n`)

const paragraphJoin = "\n\n"

// SplitChunks splits text into chunks whose estimated token count stays
// at or under maxTokens wherever the input allows it. Paragraphs are
// the preferred split unit; a paragraph that alone exceeds the budget
// is split at sentence boundaries instead. A single sentence over the
// budget is kept whole, so such a chunk may exceed maxTokens.
//
// The split is deterministic and lossless: concatenating the chunks
// reproduces the input up to collapsed separator whitespace, with no
// content dropped or duplicated. At least one chunk is always returned,
// and chunk ordinals follow input order.
func SplitChunks(text string, maxTokens int) []Chunk {
	if EstimateTokens(text) <= maxTokens {
		return finalizeChunks([]string{text})
	}

	var pieces []string
	buffer := ""

	flush := func() {
		if buffer != "" {
			pieces = append(pieces, buffer)
			buffer = ""
		}
	}

	for _, para := range splitParagraphs(text) {
		if EstimateTokens(para) > maxTokens {
			// The paragraph alone blows the budget. Close out the
			// running buffer and accumulate its sentences instead.
			flush()
			buffer = accumulateSentences(para, maxTokens, &pieces)
			continue
		}

		candidate := para
		if buffer != "" {
			candidate = buffer + paragraphJoin + para
		}
		if EstimateTokens(candidate) <= maxTokens {
			buffer = candidate
		} else {
			flush()
			buffer = para
		}
	}
	flush()

	if len(pieces) == 0 {
		pieces = []string{text}
	}
	return finalizeChunks(pieces)
}

// accumulateSentences greedily packs the sentences of one oversized
// paragraph, appending every full buffer to pieces. The remainder is
// returned so following paragraphs can continue filling it.
func accumulateSentences(para string, maxTokens int, pieces *[]string) string {
	buffer := ""
	for _, sentence := range splitSentences(para) {
		candidate := sentence
		if buffer != "" {
			candidate = buffer + " " + sentence
		}
		if EstimateTokens(candidate) <= maxTokens {
			buffer = candidate
			continue
		}
		if buffer != "" {
			*pieces = append(*pieces, buffer)
		}
		// An atomic sentence over the budget stays whole and will be
		// emitted on the next iteration or returned as the remainder.
		buffer = sentence
	}
	return buffer
}

// splitParagraphs splits on blank lines and drops empty entries.
func splitParagraphs(text string) []string {
	var paragraphs []string
	for _, para := range paragraphSeparator.Split(text, -1) {
		para = strings.TrimSpace(para)
		if para != "" {
			paragraphs = append(paragraphs, para)
		}
	}
	return paragraphs
}

// splitSentences splits text after '.', '!' or '?' followed by
// whitespace. The terminator stays with its sentence. Text without any
// such boundary comes back as a single sentence.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for i := 0; i+1 < len(text); i++ {
		c := text[i]
		if c != '.' && c != '!' && c != '?' {
			continue
		}
		next := text[i+1]
		if next != ' ' && next != '\t' && next != '\n' && next != '\r' {
			continue
		}
		sentence := strings.TrimSpace(text[start : i+1])
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
		start = i + 1
	}
	tail := strings.TrimSpace(text[start:])
	if tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}

func finalizeChunks(pieces []string) []Chunk {
	chunks := make([]Chunk, len(pieces))
	for i, piece := range pieces {
		chunks[i] = Chunk{
			Text:    piece,
			Ordinal: i + 1,
			Total:   len(pieces),
		}
	}
	return chunks
}
