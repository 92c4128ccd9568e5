package service

import (
	"context"
	"time"
)

// Activity event types published by the use cases.
const (
	EventAccountRegistered = "account.registered"
	EventCartItemAdded     = "cart.item_added"
	EventCartItemRemoved   = "cart.item_removed"
)

// ActivityEvent represents a domain activity forwarded to downstream consumers
// (analytics, audit). Publishing is best-effort and never fails the request.
type ActivityEvent struct {
	RequestID  string    `json:"request_id,omitempty"` // For distributed tracing
	EventType  string    `json:"event_type"`
	AccountID  string    `json:"account_id"`
	ItemID     string    `json:"item_id,omitempty"`
	Quantity   int       `json:"quantity,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue.
type EventPublisher interface {
	// PublishActivityEvent publishes an activity event for async processing.
	PublishActivityEvent(ctx context.Context, event *ActivityEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
