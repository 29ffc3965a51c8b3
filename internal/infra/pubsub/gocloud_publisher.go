package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"

	"authapp/internal/domain/lifecycle"
	"authapp/internal/domain/service"

	"github.com/pkg/errors"
	"gocloud.dev/pubsub"
	_ "gocloud.dev/pubsub/gcppubsub" // gcppubsub:// topic URLs
	_ "gocloud.dev/pubsub/mempubsub" // mem:// topic URLs
)

const (
	// EventTypeUserRegistered is sent in the event_type attribute.
	EventTypeUserRegistered = "user.registered"

	attrEventType = "event_type"
	attrUserID    = "user_id"
	attrRequestID = "request_id"
)

// topicPublisher implements EventPublisher on top of a gocloud.dev topic,
// so the same code publishes to in-memory and Google Cloud Pub/Sub topics.
type topicPublisher struct {
	topic  *pubsub.Topic
	logger *slog.Logger
}

// NewTopicPublisher opens the topic behind topicURL.
func NewTopicPublisher(ctx context.Context, topicURL string, logger *slog.Logger) (service.EventPublisher, error) {
	topic, err := pubsub.OpenTopic(ctx, topicURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open topic %s", topicURL)
	}

	return &topicPublisher{
		topic:  topic,
		logger: logger,
	}, nil
}

// PublishUserRegistered sends the event as a JSON body with routing attributes.
func (p *topicPublisher) PublishUserRegistered(ctx context.Context, event *service.UserRegisteredEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	metadata := map[string]string{
		attrEventType: EventTypeUserRegistered,
		attrUserID:    event.UserID,
	}
	if event.RequestID != "" {
		metadata[attrRequestID] = event.RequestID
	}

	if err := p.topic.Send(ctx, &pubsub.Message{Body: data, Metadata: metadata}); err != nil {
		return errors.Wrap(err, "failed to send user.registered event")
	}

	p.logger.Debug("[PubSub] Event published",
		slog.String(attrEventType, EventTypeUserRegistered),
		slog.String(attrUserID, event.UserID),
	)

	return nil
}

// Close flushes pending sends and releases the topic.
func (p *topicPublisher) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	return errors.WithStack(p.topic.Shutdown(ctx))
}
