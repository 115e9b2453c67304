package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
)

// SetPaymentTermsCommandHandler sets cash or credit terms, including extending
// a credit due date.
type SetPaymentTermsCommandHandler struct {
	uowFactory OrderUoWFactory
	lifecycle  order.Lifecycle
}

// NewSetPaymentTermsCommandHandler creates a handler for payment terms changes.
func NewSetPaymentTermsCommandHandler(
	uowFactory OrderUoWFactory,
	lifecycle order.Lifecycle,
) SetPaymentTermsCommandHandler {
	return SetPaymentTermsCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
	}
}

// Handle applies Lifecycle.SetPaymentTerms and persists the order.
func (h SetPaymentTermsCommandHandler) Handle(ctx context.Context, cmd SetPaymentTermsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return h.lifecycle.SetPaymentTerms(o, cmd.PaymentType(), cmd.CreditDueDate(), cmd.Actor())
	})
}
