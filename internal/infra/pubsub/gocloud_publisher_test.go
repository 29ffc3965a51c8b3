package pubsub

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"authapp/config"
	"authapp/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"gocloud.dev/pubsub"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTopicPublisher_PublishUserRegistered(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	topicURL := "mem://" + uuid.NewString()
	publisher, err := NewTopicPublisher(ctx, topicURL, newDiscardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = publisher.Close() })

	// mempubsub only delivers to subscriptions that exist at send time.
	sub, err := pubsub.OpenSubscription(ctx, topicURL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sub.Shutdown(context.Background()) })

	event := &service.UserRegisteredEvent{
		UserID:     uuid.NewString(),
		Email:      "alice@example.com",
		Name:       "Alice",
		RequestID:  "req-1",
		OccurredAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, publisher.PublishUserRegistered(ctx, event))

	msg, err := sub.Receive(ctx)
	require.NoError(t, err)
	msg.Ack()

	assert.Equal(t, EventTypeUserRegistered, msg.Metadata[attrEventType])
	assert.Equal(t, event.UserID, msg.Metadata[attrUserID])
	assert.Equal(t, "req-1", msg.Metadata[attrRequestID])

	var got service.UserRegisteredEvent
	require.NoError(t, json.Unmarshal(msg.Body, &got))
	assert.Equal(t, *event, got)
	assert.NotContains(t, string(msg.Body), "password")
}

func TestNewTopicPublisher_InvalidURL(t *testing.T) {
	_, err := NewTopicPublisher(context.Background(), "unknown-scheme://topic", newDiscardLogger())
	assert.Error(t, err)
}

func TestNewEventPublisher_Disabled(t *testing.T) {
	publisher, err := NewEventPublisher(PublisherParams{
		Lc:     fxtest.NewLifecycle(t),
		Ctx:    context.Background(),
		Config: &config.Config{},
		Logger: newDiscardLogger(),
	})
	require.NoError(t, err)
	assert.IsType(t, &noopPublisher{}, publisher)
	assert.NoError(t, publisher.PublishUserRegistered(context.Background(), &service.UserRegisteredEvent{UserID: "u"}))
	assert.NoError(t, publisher.Close())
}

func TestNewEventPublisher_MemTopicClosedOnStop(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	publisher, err := NewEventPublisher(PublisherParams{
		Lc:     lc,
		Ctx:    context.Background(),
		Config: &config.Config{PubSub: &config.PubSubConfig{TopicURL: "mem://" + uuid.NewString()}},
		Logger: newDiscardLogger(),
	})
	require.NoError(t, err)
	assert.IsType(t, &topicPublisher{}, publisher)

	lc.RequireStart()
	lc.RequireStop()

	err = publisher.PublishUserRegistered(context.Background(), &service.UserRegisteredEvent{UserID: "u"})
	assert.Error(t, err)
}
