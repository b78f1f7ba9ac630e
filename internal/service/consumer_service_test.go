package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"ai-chat-rag-be/internal/dto"
	"ai-chat-rag-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	gocache "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBus() *gochannel.GoChannel {
	return gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
}

func TestConsumerTracksSessionActivity(t *testing.T) {
	pubSub := newTestBus()
	defer pubSub.Close()

	consumer := NewConsumerService(pubSub, "TURNS", gocache.New(time.Hour, time.Hour))
	require.NoError(t, consumer.Consume(context.Background()))

	publisher := NewPublisherService("TURNS", pubSub)
	require.NoError(t, publisher.PublishTurnRecorded(events.NewTurnRecorded("s1", "first question")))
	require.NoError(t, publisher.PublishTurnRecorded(events.NewTurnRecorded("s1", "second question")))

	require.Eventually(t, func() bool {
		activity, found := consumer.Activity("s1")
		return found && activity.TurnCount == 2
	}, 2*time.Second, 10*time.Millisecond)

	activity, found := consumer.Activity("s1")
	require.True(t, found)
	assert.Equal(t, "second question", activity.LastQuestion)
	assert.False(t, activity.LastActivity.IsZero())
}

func TestConsumerIgnoresMalformedPayload(t *testing.T) {
	pubSub := newTestBus()
	defer pubSub.Close()

	consumer := NewConsumerService(pubSub, "TURNS", gocache.New(time.Hour, time.Hour))
	require.NoError(t, consumer.Consume(context.Background()))

	require.NoError(t, pubSub.Publish("TURNS", newRawMessage(t, []byte("not json"))))
	require.NoError(t, pubSub.Publish("TURNS", marshalTurn(t, "s1", "real question")))

	require.Eventually(t, func() bool {
		_, found := consumer.Activity("s1")
		return found
	}, 2*time.Second, 10*time.Millisecond)

	activity, _ := consumer.Activity("s1")
	assert.Equal(t, 1, activity.TurnCount)
}

func TestConsumerSkipsMissingSessionId(t *testing.T) {
	pubSub := newTestBus()
	defer pubSub.Close()

	consumer := NewConsumerService(pubSub, "TURNS", gocache.New(time.Hour, time.Hour))
	require.NoError(t, consumer.Consume(context.Background()))

	require.NoError(t, pubSub.Publish("TURNS", marshalTurn(t, "", "orphan question")))
	require.NoError(t, pubSub.Publish("TURNS", marshalTurn(t, "s1", "kept question")))

	require.Eventually(t, func() bool {
		_, found := consumer.Activity("s1")
		return found
	}, 2*time.Second, 10*time.Millisecond)

	_, found := consumer.Activity("")
	assert.False(t, found)
}

func marshalTurn(t *testing.T, sessionId, question string) *message.Message {
	t.Helper()
	body, err := json.Marshal(dto.TurnRecordedMessage{
		SessionId:  sessionId,
		Question:   question,
		RecordedAt: time.Now(),
	})
	require.NoError(t, err)
	return newRawMessage(t, body)
}

func newRawMessage(t *testing.T, body []byte) *message.Message {
	t.Helper()
	return message.NewMessage(watermill.NewUUID(), body)
}
