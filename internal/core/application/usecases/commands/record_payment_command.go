package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/guard"
)

var ErrRecordPaymentCommandIsNotConstructed = errors.New(
	"RecordPaymentCommand must be created via NewRecordPaymentCommand constructor",
)

// RecordPaymentCommand sets the payment status of an order.
// PAID also clears the order, which the transition table may refuse.
type RecordPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	status  order.PaymentStatus

	guard guard.ConstructorGuard
}

// NewRecordPaymentCommand creates a payment update for orderID.
// Returns an error if the id is zero or status is not PENDING or PAID.
func NewRecordPaymentCommand(orderID kernel.UUID, status order.PaymentStatus) (RecordPaymentCommand, error) {
	cmd := RecordPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStatus(status),
	); err != nil {
		return RecordPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRecordPaymentCommandIsNotConstructed otherwise.
func (c RecordPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRecordPaymentCommandIsNotConstructed)
}

// OrderID returns the order being paid.
func (c RecordPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Status returns the payment status to record.
func (c RecordPaymentCommand) Status() order.PaymentStatus {
	return c.status
}

func (c *RecordPaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RecordPaymentCommand) setStatus(status order.PaymentStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.status = status
	return nil
}
