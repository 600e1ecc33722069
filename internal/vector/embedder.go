// Package vector provides text embedding and vector similarity
// utilities for semantic note search.
package vector

const (
	// DefaultEmbeddingDimensions is the vector size produced by the
	// default embedding model.
	DefaultEmbeddingDimensions = 1536
)

// Embedder defines the interface for creating vector embeddings from text.
type Embedder interface {
	// CreateEmbedding converts text into a vector representation.
	CreateEmbedding(text string) ([]float32, error)

	// Initialize sets up the embedder with any required configuration.
	Initialize() error
}
