package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
)

// TransitionOrderCommandHandler applies Lifecycle.Transition and persists the result.
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	lifecycle  order.Lifecycle
}

// NewTransitionOrderCommandHandler creates a handler for status moves.
func NewTransitionOrderCommandHandler(
	uowFactory OrderUoWFactory,
	lifecycle order.Lifecycle,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
	}
}

// Handle returns InvalidTransitionError for edges outside the table and
// PreconditionFailedError when closing an unpaid or unconfirmed order.
func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return h.lifecycle.Transition(o, cmd.Target(), cmd.Actor(), cmd.Note())
	})
}
