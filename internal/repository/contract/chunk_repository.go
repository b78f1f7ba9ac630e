package contract

import (
	"context"

	"ai-chat-rag-be/internal/entity"
)

// ChunkRepository persists the semantic index as named collections of
// (text, vector) pairs. Collections are write-once: built in bulk, then
// only queried.
type ChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.IndexedChunk) error
	Count(ctx context.Context, collection string) (int64, error)
	DeleteByCollection(ctx context.Context, collection string) error
	// SearchSimilar returns up to limit chunks ordered by descending cosine
	// similarity to the query vector; ties break on original chunk order.
	// Fewer chunks than limit is not an error.
	SearchSimilar(ctx context.Context, collection string, vector []float32, limit int) ([]*entity.IndexedChunk, error)
}
