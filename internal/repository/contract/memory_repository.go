package contract

import (
	"context"

	"ai-chat-rag-be/internal/entity"
)

// MemoryRepository is the durable conversation log, keyed by session.
//
// Append assigns the timestamp at write time; History returns records in
// ascending timestamp order and an empty slice for an unknown session,
// since absence is not an error. A record appended by one call is visible to
// the next History call on the same session (read-your-writes within a
// single process).
type MemoryRepository interface {
	Append(ctx context.Context, sessionId, question, answer string) error
	History(ctx context.Context, sessionId string) ([]*entity.MemoryRecord, error)
	Count(ctx context.Context, sessionId string) (int64, error)
}
