package model

import (
	"time"

	"github.com/google/uuid"
)

type MemoryRecord struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId string    `gorm:"type:varchar(255);not null;index"`
	Question  string    `gorm:"type:text;not null"`
	Answer    string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (MemoryRecord) TableName() string {
	return "memory_records"
}
