package commands

import (
	"context"
	"fmt"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

// RelayOutboxCommandHandler moves committed status-change events to the broker.
//
// Messages are published in insertion order. When publishing fails the
// messages sent so far are still acknowledged and the rest stay pending for
// the next run, so a message may be delivered more than once but never lost.
type RelayOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
	clock      order.Clock
}

// NewRelayOutboxCommandHandler creates a relay publishing through publisher
// and stamping sent messages with the clock.
func NewRelayOutboxCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.EventPublisher,
	clock order.Clock,
) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
	}
}

// Handle returns how many messages were published.
func (h RelayOutboxCommandHandler) Handle(ctx context.Context, cmd RelayOutboxCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.OutboxRepository()
	messages, err := outbox.FetchPending(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(messages) == 0 {
		return 0, nil
	}

	sent := make([]int64, 0, len(messages))
	var publishErr error
	for _, msg := range messages {
		if publishErr = h.publisher.Publish(ctx, msg); publishErr != nil {
			publishErr = fmt.Errorf("publish outbox message %d: %w", msg.ID, publishErr)
			break
		}
		sent = append(sent, msg.ID)
	}

	if len(sent) > 0 {
		if err = outbox.MarkSent(ctx, sent, h.clock.Now()); err != nil {
			return 0, err
		}
		if err = uow.Commit(ctx); err != nil {
			return 0, err
		}
	}

	return len(sent), publishErr
}
