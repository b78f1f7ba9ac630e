package service

import (
	"encoding/json"

	"ai-chat-rag-be/internal/dto"
	"ai-chat-rag-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IPublisherService interface {
	PublishTurnRecorded(event events.Event) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (ps *publisherService) PublishTurnRecorded(event events.Event) error {
	data := event.Payload()

	payload := dto.TurnRecordedMessage{
		RecordedAt: event.Timestamp(),
	}
	if v, ok := data["session_id"].(string); ok {
		payload.SessionId = v
	}
	if v, ok := data["question"].(string); ok {
		payload.Question = v
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), body)
	return ps.pubSub.Publish(ps.topicName, msg)
}
