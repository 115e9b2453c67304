package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/guard"
)

var ErrSettleCreditCommandIsNotConstructed = errors.New(
	"SettleCreditCommand must be created via NewSettleCreditCommand constructor",
)

// SettleCreditCommand records payment for a credit order that already shipped.
type SettleCreditCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   order.Actor

	guard guard.ConstructorGuard
}

// NewSettleCreditCommand creates a settlement of a shipped credit order.
func NewSettleCreditCommand(orderID kernel.UUID, actor order.Actor) (SettleCreditCommand, error) {
	cmd := SettleCreditCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
	); err != nil {
		return SettleCreditCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSettleCreditCommandIsNotConstructed otherwise.
func (c SettleCreditCommand) Validate() error {
	return c.guard.Validate(ErrSettleCreditCommandIsNotConstructed)
}

// OrderID returns the credit order being settled.
func (c SettleCreditCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns who recorded the settlement.
func (c SettleCreditCommand) Actor() order.Actor {
	return c.actor
}

func (c *SettleCreditCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SettleCreditCommand) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
