package interfaces

import (
	"context"
)

// EmbeddingService generates fixed-length vector embeddings. Failures here
// are treated as best-effort by the analyzer: a failed embedding never
// invalidates an otherwise-successful textual analysis.
type EmbeddingService interface {
	// Embed generates an embedding vector for the given text
	Embed(ctx context.Context, text string) ([]float32, error)

	// ModelName returns the embedding model identifier
	ModelName() string

	// Dimension returns the configured embedding vector length
	Dimension() int
}
