package implementation

import (
	"context"

	"ai-chat-rag-be/internal/entity"
	"ai-chat-rag-be/internal/mapper"
	"ai-chat-rag-be/internal/model"
	"ai-chat-rag-be/internal/repository/contract"
	"ai-chat-rag-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MemoryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MemoryMapper
}

func NewMemoryRepository(db *gorm.DB) contract.MemoryRepository {
	return &MemoryRepositoryImpl{
		db:     db,
		mapper: mapper.NewMemoryMapper(),
	}
}

func (r *MemoryRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MemoryRepositoryImpl) Append(ctx context.Context, sessionId, question, answer string) error {
	// CreatedAt is left zero so gorm's autoCreateTime assigns the
	// timestamp at write time, not the caller.
	m := &model.MemoryRecord{
		Id:        uuid.New(),
		SessionId: sessionId,
		Question:  question,
		Answer:    answer,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return &contract.StorageError{Op: "append", Err: err}
	}
	return nil
}

func (r *MemoryRepositoryImpl) History(ctx context.Context, sessionId string) ([]*entity.MemoryRecord, error) {
	var models []*model.MemoryRecord
	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, &contract.StorageError{Op: "history", Err: err}
	}
	records := make([]*entity.MemoryRecord, len(models))
	for i, m := range models {
		records[i] = r.mapper.ToEntity(m)
	}
	return records, nil
}

func (r *MemoryRepositoryImpl) Count(ctx context.Context, sessionId string) (int64, error) {
	var count int64
	query := r.applySpecifications(
		r.db.WithContext(ctx).Model(&model.MemoryRecord{}),
		specification.BySessionID{SessionID: sessionId},
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, &contract.StorageError{Op: "count", Err: err}
	}
	return count, nil
}
