package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
)

// SettleCreditCommandHandler marks a credit order paid after it shipped, so
// that it can later be closed.
type SettleCreditCommandHandler struct {
	uowFactory OrderUoWFactory
	lifecycle  order.Lifecycle
}

// NewSettleCreditCommandHandler creates a handler for credit settlements.
func NewSettleCreditCommandHandler(
	uowFactory OrderUoWFactory,
	lifecycle order.Lifecycle,
) SettleCreditCommandHandler {
	return SettleCreditCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
	}
}

// Handle applies Lifecycle.SettleCredit. Orders that are not unpaid credit
// orders in IN_TRANSIT or DELIVERED fail with PreconditionFailed.
func (h SettleCreditCommandHandler) Handle(ctx context.Context, cmd SettleCreditCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return h.lifecycle.SettleCredit(o, cmd.Actor())
	})
}
