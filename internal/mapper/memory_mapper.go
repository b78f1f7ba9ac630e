package mapper

import (
	"ai-chat-rag-be/internal/entity"
	"ai-chat-rag-be/internal/model"
)

type MemoryMapper struct{}

func NewMemoryMapper() *MemoryMapper {
	return &MemoryMapper{}
}

func (m *MemoryMapper) ToEntity(r *model.MemoryRecord) *entity.MemoryRecord {
	if r == nil {
		return nil
	}
	return &entity.MemoryRecord{
		Id:        r.Id,
		SessionId: r.SessionId,
		Question:  r.Question,
		Answer:    r.Answer,
		CreatedAt: r.CreatedAt,
	}
}

func (m *MemoryMapper) ToModel(r *entity.MemoryRecord) *model.MemoryRecord {
	if r == nil {
		return nil
	}
	return &model.MemoryRecord{
		Id:        r.Id,
		SessionId: r.SessionId,
		Question:  r.Question,
		Answer:    r.Answer,
		CreatedAt: r.CreatedAt,
	}
}
