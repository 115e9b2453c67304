package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
)

// SetPricingCommandHandler quotes prices for an order.
//
// Example:
//
//	handler := NewSetPricingCommandHandler(uowFactory, lifecycle)
//	cmd, _ := NewSetPricingCommand(orderID, order.ActorAdmin, []PriceLine{
//	    {ProductRef: steelRef, UnitPrice: decimal.NewFromInt(65)},
//	})
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return err
//	}
//	// An inquiry is now WAITING_CLIENT_APPROVAL with its total derived
type SetPricingCommandHandler struct {
	uowFactory OrderUoWFactory
	lifecycle  order.Lifecycle
}

// NewSetPricingCommandHandler creates a handler for quotes.
func NewSetPricingCommandHandler(uowFactory OrderUoWFactory, lifecycle order.Lifecycle) SetPricingCommandHandler {
	return SetPricingCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
	}
}

// Handle applies Lifecycle.SetPricing. Prices for products that are not on
// the order are ignored.
func (h SetPricingCommandHandler) Handle(ctx context.Context, cmd SetPricingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return h.lifecycle.SetPricing(o, cmd.Updates(), cmd.Actor())
	})
}
