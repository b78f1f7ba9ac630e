package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type IndexChunk struct {
	Id         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Collection string          `gorm:"type:varchar(255);not null;index"`
	ChunkIndex int             `gorm:"not null;default:0"` // original split order, used as similarity tie-break
	Content    string          `gorm:"type:text;not null"`
	Embedding  pgvector.Vector `gorm:"type:vector(768)"` // Gemini text-embedding-004 uses 768 dimensions
	CreatedAt  time.Time       `gorm:"autoCreateTime"`
}

func (IndexChunk) TableName() string {
	return "index_chunks"
}
