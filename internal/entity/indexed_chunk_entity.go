package entity

import (
	"time"

	"github.com/google/uuid"
)

// IndexedChunk is one retrievable window of background text together with
// its embedding. Chunks are immutable once written; re-indexing means
// rebuilding the whole collection.
type IndexedChunk struct {
	Id         uuid.UUID
	Collection string
	ChunkIndex int
	Content    string
	Embedding  []float32
	CreatedAt  time.Time
}
