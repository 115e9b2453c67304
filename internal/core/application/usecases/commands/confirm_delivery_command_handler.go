package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
)

// ConfirmDeliveryCommandHandler is idempotent: a repeated confirmation only
// adds another audit entry.
type ConfirmDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
	lifecycle  order.Lifecycle
}

// NewConfirmDeliveryCommandHandler creates a handler for receipt confirmations.
func NewConfirmDeliveryCommandHandler(
	uowFactory OrderUoWFactory,
	lifecycle order.Lifecycle,
) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
	}
}

// Handle sets the delivery status to CONFIRMED. The order status is left as is;
// closing stays a separate admin action.
func (h ConfirmDeliveryCommandHandler) Handle(ctx context.Context, cmd ConfirmDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return h.lifecycle.ConfirmDelivery(o, cmd.Actor())
	})
}
