package dto

import "time"

type QueryRequest struct {
	Question  string `json:"question" validate:"required"`
	SessionId string `json:"sessionId" validate:"required"`
}

// QueryResponse is the full final pipeline state. The HTTP layer forwards
// it as-is; follow-ups travel as newline-delimited text for backward
// compatibility with existing clients.
type QueryResponse struct {
	Question  string `json:"question"`
	SessionId string `json:"sessionId"`
	Context   string `json:"context"`
	Answer    string `json:"answer"`
	FollowUp  string `json:"followUp"`
	Summary   string `json:"summary"`
}

type SummarizeRequest struct {
	SessionId string `json:"sessionId" validate:"required"`
	// Fast opts into the summary-only stage subset instead of the full
	// pipeline run the original behavior pays for.
	Fast bool `json:"fast,omitempty"`
}

type SummarizeResponse struct {
	Summary string `json:"summary"`
}

type HistoryTurn struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
}

type HistoryResponse struct {
	SessionId    string        `json:"sessionId"`
	Turns        []HistoryTurn `json:"turns"`
	TurnCount    int           `json:"turn_count"`
	LastActivity *time.Time    `json:"last_activity,omitempty"`
}

// TurnRecordedMessage is the wire payload for the turn-recorded topic.
type TurnRecordedMessage struct {
	SessionId  string    `json:"session_id"`
	Question   string    `json:"question"`
	RecordedAt time.Time `json:"recorded_at"`
}
