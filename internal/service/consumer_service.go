package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"ai-chat-rag-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	gocache "github.com/patrickmn/go-cache"
)

// SessionActivity is the in-memory view of a live session, maintained by
// the turn-recorded consumer and read by the history endpoint.
type SessionActivity struct {
	TurnCount    int
	LastQuestion string
	LastActivity time.Time
}

type IConsumerService interface {
	Consume(ctx context.Context) error
	Activity(sessionId string) (*SessionActivity, bool)
}

type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	activity  *gocache.Cache
}

func NewConsumerService(pubSub *gochannel.GoChannel, topicName string, activity *gocache.Cache) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		activity:  activity,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload dto.TurnRecordedMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if payload.SessionId == "" {
		log.Printf("[WARN] Turn recorded without a session id, skipping")
		msg.Ack()
		return
	}

	current := &SessionActivity{}
	if cached, found := cs.activity.Get(payload.SessionId); found {
		if existing, ok := cached.(*SessionActivity); ok {
			current = existing
		}
	}

	recordedAt := payload.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	cs.activity.Set(payload.SessionId, &SessionActivity{
		TurnCount:    current.TurnCount + 1,
		LastQuestion: payload.Question,
		LastActivity: recordedAt,
	}, gocache.DefaultExpiration)

	log.Printf("[INFO] Recorded turn for session %s (turns seen: %d)", payload.SessionId, current.TurnCount+1)
	msg.Ack()
}

func (cs *consumerService) Activity(sessionId string) (*SessionActivity, bool) {
	cached, found := cs.activity.Get(sessionId)
	if !found {
		return nil, false
	}
	activity, ok := cached.(*SessionActivity)
	if !ok {
		return nil, false
	}
	return activity, true
}
