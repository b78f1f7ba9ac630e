package implementation

import (
	"context"

	"ai-chat-rag-be/internal/entity"
	"ai-chat-rag-be/internal/mapper"
	"ai-chat-rag-be/internal/model"
	"ai-chat-rag-be/internal/repository/contract"
	"ai-chat-rag-be/internal/repository/specification"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.IndexChunkMapper
}

func NewChunkRepository(db *gorm.DB) contract.ChunkRepository {
	return &ChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewIndexChunkMapper(),
	}
}

func (r *ChunkRepositoryImpl) CreateBulk(ctx context.Context, chunks []*entity.IndexedChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	models := make([]*model.IndexChunk, len(chunks))
	for i, c := range chunks {
		models[i] = r.mapper.ToModel(c)
	}

	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return &contract.StorageError{Op: "create chunks", Err: err}
	}

	// Update IDs back to entities
	for i, m := range models {
		*chunks[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *ChunkRepositoryImpl) Count(ctx context.Context, collection string) (int64, error) {
	var count int64
	query := specification.ByCollection{Collection: collection}.
		Apply(r.db.WithContext(ctx).Model(&model.IndexChunk{}))
	err := query.Count(&count).Error
	if err != nil {
		return 0, &contract.StorageError{Op: "count chunks", Err: err}
	}
	return count, nil
}

func (r *ChunkRepositoryImpl) DeleteByCollection(ctx context.Context, collection string) error {
	err := specification.ByCollection{Collection: collection}.
		Apply(r.db.WithContext(ctx)).
		Delete(&model.IndexChunk{}).Error
	if err != nil {
		return &contract.StorageError{Op: "delete collection", Err: err}
	}
	return nil
}

func (r *ChunkRepositoryImpl) SearchSimilar(ctx context.Context, collection string, vector []float32, limit int) ([]*entity.IndexedChunk, error) {
	if limit <= 0 {
		limit = 3
	}
	var models []*model.IndexChunk

	// pgvector cosine distance: embedding <=> query. Smaller distance is
	// more similar; chunk_index breaks exact ties deterministically.
	// The ordering must go through clause.OrderBy: gorm's Order() accepts
	// only strings and order clauses, and drops a bare expression.
	err := specification.ByCollection{Collection: collection}.
		Apply(r.db.WithContext(ctx)).
		Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:  "embedding <=> ?, chunk_index ASC",
			Vars: []interface{}{pgvector.NewVector(vector)},
		}}).
		Limit(limit).
		Find(&models).Error

	if err != nil {
		return nil, &contract.StorageError{Op: "search chunks", Err: err}
	}

	chunks := make([]*entity.IndexedChunk, len(models))
	for i, m := range models {
		chunks[i] = r.mapper.ToEntity(m)
	}
	return chunks, nil
}
