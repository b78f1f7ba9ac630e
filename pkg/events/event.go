package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "CONVERSATION_TURN_RECORDED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent carries the common fields an event needs.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

const TypeTurnRecorded = "CONVERSATION_TURN_RECORDED"

// NewTurnRecorded builds the event published after a pipeline run commits
// a new conversation turn.
func NewTurnRecorded(sessionId, question string) Event {
	return BaseEvent{
		Type: TypeTurnRecorded,
		Data: map[string]interface{}{
			"session_id": sessionId,
			"question":   question,
		},
		OccurredAt: time.Now(),
	}
}
