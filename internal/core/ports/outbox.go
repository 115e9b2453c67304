package ports

import (
	"context"
	"time"
)

// OutboxMessage is an integration event waiting to be published.
type OutboxMessage struct {
	ID        int64
	EventID   string
	EventType string
	Key       string
	Payload   []byte
	CreatedAt time.Time
}

// OutboxRepository reads and acknowledges outbox rows. Rows are written by
// OrderRepository as part of the aggregate's transaction.
type OutboxRepository interface {
	// FetchPending locks up to limit unsent messages, oldest first.
	FetchPending(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkSent(ctx context.Context, ids []int64, sentAt time.Time) error
}

// EventPublisher delivers outbox messages to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, msg OutboxMessage) error
}
