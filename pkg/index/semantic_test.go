package index

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"ai-chat-rag-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChunkRepo keeps chunks in memory and ranks SearchSimilar by cosine
// similarity, mirroring the pgvector ordering the real repository uses.
type fakeChunkRepo struct {
	chunks    []*entity.IndexedChunk
	createErr error
}

func (f *fakeChunkRepo) CreateBulk(ctx context.Context, chunks []*entity.IndexedChunk) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.chunks = append(f.chunks, chunks...)
	return nil
}

func (f *fakeChunkRepo) Count(ctx context.Context, collection string) (int64, error) {
	var n int64
	for _, c := range f.chunks {
		if c.Collection == collection {
			n++
		}
	}
	return n, nil
}

func (f *fakeChunkRepo) DeleteByCollection(ctx context.Context, collection string) error {
	kept := f.chunks[:0]
	for _, c := range f.chunks {
		if c.Collection != collection {
			kept = append(kept, c)
		}
	}
	f.chunks = kept
	return nil
}

func (f *fakeChunkRepo) SearchSimilar(ctx context.Context, collection string, vector []float32, limit int) ([]*entity.IndexedChunk, error) {
	var matches []*entity.IndexedChunk
	for _, c := range f.chunks {
		if c.Collection == collection {
			matches = append(matches, c)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		si, sj := cosine(vector, matches[i].Embedding), cosine(vector, matches[j].Embedding)
		if si != sj {
			return si > sj
		}
		return matches[i].ChunkIndex < matches[j].ChunkIndex
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// keywordEmbedder produces a fixed vector per known keyword so similarity
// ordering in tests is fully controlled.
type keywordEmbedder struct {
	vectors map[string][]float32
	err     error
	calls   int
}

func (k *keywordEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	k.calls++
	if k.err != nil {
		return nil, k.err
	}
	for keyword, vec := range k.vectors {
		if len(text) >= len(keyword) && containsWord(text, keyword) {
			return vec, nil
		}
	}
	return []float32{0, 0, 1}, nil
}

func containsWord(text, word string) bool {
	for i := 0; i+len(word) <= len(text); i++ {
		if text[i:i+len(word)] == word {
			return true
		}
	}
	return false
}

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docs.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestBuildAndQuery(t *testing.T) {
	repo := &fakeChunkRepo{}
	embedder := &keywordEmbedder{vectors: map[string][]float32{
		"golang": {1, 0, 0},
		"python": {0, 1, 0},
	}}
	idx := NewSemantic(repo, embedder, "docs", 40, 5)

	path := writeDoc(t, "golang is compiled")
	count, err := idx.Build(context.Background(), []string{path})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	results, err := idx.Query(context.Background(), "tell me about golang", 3)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "golang is compiled", results[0])
}

func TestQueryOrdersByRelevance(t *testing.T) {
	repo := &fakeChunkRepo{}
	embedder := &keywordEmbedder{vectors: map[string][]float32{
		"golang": {1, 0, 0},
		"python": {0, 1, 0},
		"rust":   {0.7, 0.7, 0},
	}}
	idx := NewSemantic(repo, embedder, "docs", 40, 5)

	require.NoError(t, repo.CreateBulk(context.Background(), []*entity.IndexedChunk{
		{Collection: "docs", ChunkIndex: 0, Content: "about python", Embedding: []float32{0, 1, 0}},
		{Collection: "docs", ChunkIndex: 1, Content: "about golang", Embedding: []float32{1, 0, 0}},
		{Collection: "docs", ChunkIndex: 2, Content: "about rust", Embedding: []float32{0.7, 0.7, 0}},
	}))

	results, err := idx.Query(context.Background(), "the golang language", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "about golang", results[0])
	assert.Equal(t, "about rust", results[1])
}

func TestQueryTopKLargerThanIndex(t *testing.T) {
	repo := &fakeChunkRepo{}
	embedder := &keywordEmbedder{vectors: map[string][]float32{}}
	idx := NewSemantic(repo, embedder, "docs", 40, 5)

	require.NoError(t, repo.CreateBulk(context.Background(), []*entity.IndexedChunk{
		{Collection: "docs", ChunkIndex: 0, Content: "only chunk", Embedding: []float32{0, 0, 1}},
	}))

	results, err := idx.Query(context.Background(), "anything", 10)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestBuildFailsWithoutDocuments(t *testing.T) {
	repo := &fakeChunkRepo{}
	idx := NewSemantic(repo, &keywordEmbedder{}, "docs", 40, 5)

	_, err := idx.Build(context.Background(), []string{filepath.Join(t.TempDir(), "missing.txt")})

	var buildErr *BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.ErrorIs(t, err, ErrNoDocuments)
	assert.Empty(t, repo.chunks)
}

func TestBuildFailsOnEmptyFile(t *testing.T) {
	repo := &fakeChunkRepo{}
	idx := NewSemantic(repo, &keywordEmbedder{}, "docs", 40, 5)

	path := writeDoc(t, "")
	_, err := idx.Build(context.Background(), []string{path})
	assert.ErrorIs(t, err, ErrNoDocuments)
}

func TestBuildPropagatesEmbedderFailure(t *testing.T) {
	repo := &fakeChunkRepo{}
	embedder := &keywordEmbedder{err: errors.New("quota exceeded")}
	idx := NewSemantic(repo, embedder, "docs", 40, 5)

	path := writeDoc(t, "some content")
	_, err := idx.Build(context.Background(), []string{path})

	var buildErr *BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Empty(t, repo.chunks)
}

func TestBuildAssignsSequentialChunkIndexes(t *testing.T) {
	repo := &fakeChunkRepo{}
	idx := NewSemantic(repo, &keywordEmbedder{}, "docs", 10, 2)

	path := writeDoc(t, "abcdefghijklmnopqrstuvwxyz")
	count, err := idx.Build(context.Background(), []string{path})
	require.NoError(t, err)
	require.Greater(t, count, 1)

	for i, c := range repo.chunks {
		assert.Equal(t, i, c.ChunkIndex)
	}
}

func TestLoadEmptyCollection(t *testing.T) {
	idx := NewSemantic(&fakeChunkRepo{}, &keywordEmbedder{}, "docs", 40, 5)

	err := idx.Load(context.Background())

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "docs", loadErr.Collection)
}

func TestLoadExistingCollection(t *testing.T) {
	repo := &fakeChunkRepo{}
	require.NoError(t, repo.CreateBulk(context.Background(), []*entity.IndexedChunk{
		{Collection: "docs", Content: "chunk", Embedding: []float32{1, 0, 0}},
	}))
	idx := NewSemantic(repo, &keywordEmbedder{}, "docs", 40, 5)

	assert.NoError(t, idx.Load(context.Background()))
}

func TestRebuildReplacesCollection(t *testing.T) {
	repo := &fakeChunkRepo{}
	require.NoError(t, repo.CreateBulk(context.Background(), []*entity.IndexedChunk{
		{Collection: "docs", ChunkIndex: 0, Content: "stale", Embedding: []float32{1, 0, 0}},
		{Collection: "other", ChunkIndex: 0, Content: "untouched", Embedding: []float32{1, 0, 0}},
	}))
	idx := NewSemantic(repo, &keywordEmbedder{}, "docs", 40, 5)

	path := writeDoc(t, "fresh content")
	count, err := idx.Rebuild(context.Background(), []string{path})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	docsCount, err := repo.Count(context.Background(), "docs")
	require.NoError(t, err)
	assert.EqualValues(t, 1, docsCount)

	otherCount, err := repo.Count(context.Background(), "other")
	require.NoError(t, err)
	assert.EqualValues(t, 1, otherCount, "other collections must survive a rebuild")
}
