package index

import (
	"context"
	"errors"
	"fmt"
	"os"

	"ai-chat-rag-be/internal/entity"
	"ai-chat-rag-be/internal/repository/contract"
	"ai-chat-rag-be/pkg/embedding"
	"ai-chat-rag-be/pkg/utils"
)

// Semantic is a handle to one named collection of embedded text chunks.
// Build writes the collection once; after Load or Build succeeds the
// collection is treated as read-only, so concurrent Query calls are safe.
type Semantic struct {
	chunks     contract.ChunkRepository
	embedder   embedding.Provider
	collection string
	chunkSize  int
	overlap    int
}

func NewSemantic(
	chunks contract.ChunkRepository,
	embedder embedding.Provider,
	collection string,
	chunkSize int,
	overlap int,
) *Semantic {
	return &Semantic{
		chunks:     chunks,
		embedder:   embedder,
		collection: collection,
		chunkSize:  chunkSize,
		overlap:    overlap,
	}
}

func (s *Semantic) Collection() string {
	return s.collection
}

// Build reads the source documents, splits them into overlapping windows
// and embeds each window independently. It returns the number of chunks
// written. A missing or empty document set fails with BuildError wrapping
// ErrNoDocuments; nothing is written in that case.
func (s *Semantic) Build(ctx context.Context, sourcePaths []string) (int, error) {
	var texts []string
	for _, path := range sourcePaths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return 0, &BuildError{Collection: s.collection, Err: fmt.Errorf("read %s: %w", path, err)}
		}
		if len(data) == 0 {
			continue
		}
		texts = append(texts, string(data))
	}
	if len(texts) == 0 {
		return 0, &BuildError{Collection: s.collection, Err: ErrNoDocuments}
	}

	var chunks []*entity.IndexedChunk
	chunkIndex := 0
	for _, text := range texts {
		for _, window := range utils.SplitText(text, s.chunkSize, s.overlap) {
			vec, err := s.embedder.Embed(ctx, window)
			if err != nil {
				return 0, &BuildError{Collection: s.collection, Err: err}
			}
			chunks = append(chunks, &entity.IndexedChunk{
				Collection: s.collection,
				ChunkIndex: chunkIndex,
				Content:    window,
				Embedding:  vec,
			})
			chunkIndex++
		}
	}

	if err := s.chunks.CreateBulk(ctx, chunks); err != nil {
		return 0, &BuildError{Collection: s.collection, Err: err}
	}
	return len(chunks), nil
}

// Load verifies a persisted collection exists. It fails with LoadError
// when the collection is absent; load-or-build is the caller's startup
// policy, not part of this contract.
func (s *Semantic) Load(ctx context.Context) error {
	count, err := s.chunks.Count(ctx, s.collection)
	if err != nil {
		return &LoadError{Collection: s.collection, Err: err}
	}
	if count == 0 {
		return &LoadError{Collection: s.collection, Err: errors.New("collection is empty")}
	}
	return nil
}

// Rebuild drops the collection before building it again.
func (s *Semantic) Rebuild(ctx context.Context, sourcePaths []string) (int, error) {
	if err := s.chunks.DeleteByCollection(ctx, s.collection); err != nil {
		return 0, &BuildError{Collection: s.collection, Err: err}
	}
	return s.Build(ctx, sourcePaths)
}

// Query embeds the text and returns up to topK chunk contents ordered
// most-similar first. An index holding fewer than topK chunks returns
// all of them.
func (s *Semantic) Query(ctx context.Context, text string, topK int) ([]string, error) {
	vec, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	chunks, err := s.chunks.SearchSimilar(ctx, s.collection, vec, topK)
	if err != nil {
		return nil, err
	}

	contents := make([]string, len(chunks))
	for i, c := range chunks {
		contents[i] = c.Content
	}
	return contents, nil
}
