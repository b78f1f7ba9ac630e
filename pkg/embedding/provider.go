package embedding

import (
	"context"
	"fmt"
)

// Provider defines the interface for generating text embeddings.
// Implementations must be deterministic: the same text and model
// configuration always produce the same vector, because index build
// and query vectors have to share one space.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// EmbeddingError wraps a provider failure with the provider name.
type EmbeddingError struct {
	Provider string
	Err      error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding provider %s: %v", e.Provider, e.Err)
}

func (e *EmbeddingError) Unwrap() error {
	return e.Err
}
