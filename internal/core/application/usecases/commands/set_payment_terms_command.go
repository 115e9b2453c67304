package commands

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/guard"
)

var ErrSetPaymentTermsCommandIsNotConstructed = errors.New(
	"SetPaymentTermsCommand must be created via NewSetPaymentTermsCommand constructor",
)

// SetPaymentTermsCommand chooses cash or credit for an order. Whether a due
// date is required is decided by the Lifecycle.
type SetPaymentTermsCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	paymentType   order.PaymentType
	creditDueDate *time.Time
	actor         order.Actor

	guard guard.ConstructorGuard
}

// NewSetPaymentTermsCommand creates a payment terms change for orderID.
// creditDueDate may be nil; whether it is required depends on paymentType
// and is checked by the lifecycle.
func NewSetPaymentTermsCommand(
	orderID kernel.UUID,
	paymentType order.PaymentType,
	creditDueDate *time.Time,
	actor order.Actor,
) (SetPaymentTermsCommand, error) {
	cmd := SetPaymentTermsCommand{
		creditDueDate: creditDueDate,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPaymentType(paymentType),
		cmd.setActor(actor),
	); err != nil {
		return SetPaymentTermsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSetPaymentTermsCommandIsNotConstructed otherwise.
func (c SetPaymentTermsCommand) Validate() error {
	return c.guard.Validate(ErrSetPaymentTermsCommandIsNotConstructed)
}

// OrderID returns the order whose terms change.
func (c SetPaymentTermsCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PaymentType returns the new payment type.
func (c SetPaymentTermsCommand) PaymentType() order.PaymentType {
	return c.paymentType
}

// CreditDueDate returns the due date, or nil when none was given.
func (c SetPaymentTermsCommand) CreditDueDate() *time.Time {
	return c.creditDueDate
}

// Actor returns who changed the terms.
func (c SetPaymentTermsCommand) Actor() order.Actor {
	return c.actor
}

func (c *SetPaymentTermsCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SetPaymentTermsCommand) setPaymentType(paymentType order.PaymentType) error {
	if err := paymentType.Validate(); err != nil {
		return err
	}

	c.paymentType = paymentType
	return nil
}

func (c *SetPaymentTermsCommand) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
