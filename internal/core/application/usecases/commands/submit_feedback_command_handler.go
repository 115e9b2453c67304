package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
)

// SubmitFeedbackCommandHandler stores client feedback. Only the client rates orders.
type SubmitFeedbackCommandHandler struct {
	uowFactory OrderUoWFactory
	lifecycle  order.Lifecycle
}

// NewSubmitFeedbackCommandHandler creates a handler for client ratings.
func NewSubmitFeedbackCommandHandler(
	uowFactory OrderUoWFactory,
	lifecycle order.Lifecycle,
) SubmitFeedbackCommandHandler {
	return SubmitFeedbackCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
	}
}

// Handle stores the rating once delivery is confirmed; a later rating
// replaces the earlier one.
func (h SubmitFeedbackCommandHandler) Handle(ctx context.Context, cmd SubmitFeedbackCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return h.lifecycle.SubmitFeedback(o, cmd.Feedback(), order.ActorClient)
	})
}
