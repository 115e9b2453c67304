package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
)

// RecordPaymentCommandHandler records payments reported by an admin.
//
// Example:
//
//	handler := NewRecordPaymentCommandHandler(uowFactory, lifecycle)
//	cmd, _ := NewRecordPaymentCommand(orderID, order.PaymentPaid)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    // errs.ErrInvalidTransition when the order cannot be cleared from its status
//	    return err
//	}
//	// Order is now PAYMENT_CLEARED
type RecordPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	lifecycle  order.Lifecycle
}

// NewRecordPaymentCommandHandler creates a handler for payment updates.
func NewRecordPaymentCommandHandler(
	uowFactory OrderUoWFactory,
	lifecycle order.Lifecycle,
) RecordPaymentCommandHandler {
	return RecordPaymentCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
	}
}

// Handle applies Lifecycle.RecordPayment in one transaction. A refused
// transition leaves the stored order unchanged.
func (h RecordPaymentCommandHandler) Handle(ctx context.Context, cmd RecordPaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return h.lifecycle.RecordPayment(o, cmd.Status())
	})
}
