package mapper

import (
	"github.com/pgvector/pgvector-go"

	"ai-chat-rag-be/internal/entity"
	"ai-chat-rag-be/internal/model"
)

type IndexChunkMapper struct{}

func NewIndexChunkMapper() *IndexChunkMapper {
	return &IndexChunkMapper{}
}

func (m *IndexChunkMapper) ToEntity(c *model.IndexChunk) *entity.IndexedChunk {
	if c == nil {
		return nil
	}
	return &entity.IndexedChunk{
		Id:         c.Id,
		Collection: c.Collection,
		ChunkIndex: c.ChunkIndex,
		Content:    c.Content,
		Embedding:  c.Embedding.Slice(),
		CreatedAt:  c.CreatedAt,
	}
}

func (m *IndexChunkMapper) ToModel(c *entity.IndexedChunk) *model.IndexChunk {
	if c == nil {
		return nil
	}
	return &model.IndexChunk{
		Id:         c.Id,
		Collection: c.Collection,
		ChunkIndex: c.ChunkIndex,
		Content:    c.Content,
		Embedding:  pgvector.NewVector(c.Embedding),
		CreatedAt:  c.CreatedAt,
	}
}
