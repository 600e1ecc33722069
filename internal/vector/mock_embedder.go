package vector

import (
	"crypto/sha256"
	"encoding/binary"
)

// MockEmbedder is a deterministic implementation of the Embedder
// interface for tests and offline use. The same text always produces
// the same unit-length vector; different texts almost always differ.
type MockEmbedder struct {
	dimensions int
}

// NewMockEmbedder creates a new MockEmbedder with the specified dimensions.
func NewMockEmbedder(dimensions int) *MockEmbedder {
	if dimensions <= 0 {
		dimensions = 128
	}
	return &MockEmbedder{
		dimensions: dimensions,
	}
}

// Initialize sets up the embedder with any required configuration.
func (e *MockEmbedder) Initialize() error {
	return nil // No initialization needed for the mock embedder
}

// CreateEmbedding generates a deterministic embedding by stretching a
// hash chain of the text across the requested dimensions.
func (e *MockEmbedder) CreateEmbedding(text string) ([]float32, error) {
	embedding := make([]float32, e.dimensions)

	// Rehash to get fresh bytes whenever the digest runs out.
	digest := sha256.Sum256([]byte(text))
	offset := 0
	for i := 0; i < e.dimensions; i++ {
		if offset+4 > len(digest) {
			digest = sha256.Sum256(digest[:])
			offset = 0
		}
		seed := binary.LittleEndian.Uint32(digest[offset : offset+4])
		offset += 4

		// Map the seed into [-1, 1).
		embedding[i] = float32(seed%2000)/1000.0 - 1.0
	}

	Normalize(embedding)
	return embedding, nil
}
