package entity

import (
	"time"

	"github.com/google/uuid"
)

// MemoryRecord is one turn of conversation. Records are append-only:
// created once by the generate stage, never updated or deleted.
type MemoryRecord struct {
	Id        uuid.UUID
	SessionId string
	Question  string
	Answer    string
	CreatedAt time.Time
}
