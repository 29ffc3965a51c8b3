package service

import (
	"context"
	"time"
)

// UserRegisteredEvent is emitted once an account has been created.
type UserRegisteredEvent struct {
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	RequestID  string    `json:"request_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing account events
type EventPublisher interface {
	// PublishUserRegistered sends the event to the configured topic.
	PublishUserRegistered(ctx context.Context, event *UserRegisteredEvent) error

	// Close releases publisher resources.
	Close() error
}
