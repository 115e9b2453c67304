package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/guard"
)

var ErrModifyItemsCommandIsNotConstructed = errors.New(
	"ModifyItemsCommand must be created via NewModifyItemsCommand constructor",
)

// ModifyItemsCommand replaces the whole item list of an order. New lines are
// unpriced, so anything past NEW_INQUIRY goes back to PENDING_PRICING.
type ModifyItemsCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   order.Actor
	items   []order.Item

	guard guard.ConstructorGuard
}

// NewModifyItemsCommand creates an item replacement for orderID.
// Each line becomes an unpriced order.Item. An empty list or a quantity below 1
// is rejected here; duplicate products are refused when the command is handled.
func NewModifyItemsCommand(orderID kernel.UUID, actor order.Actor, lines []ItemLine) (ModifyItemsCommand, error) {
	cmd := ModifyItemsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		cmd.setItems(lines),
	); err != nil {
		return ModifyItemsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrModifyItemsCommandIsNotConstructed otherwise.
func (c ModifyItemsCommand) Validate() error {
	return c.guard.Validate(ErrModifyItemsCommandIsNotConstructed)
}

// OrderID returns the order being edited.
func (c ModifyItemsCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns who edited the items.
func (c ModifyItemsCommand) Actor() order.Actor {
	return c.actor
}

// Items returns the replacement lines.
func (c ModifyItemsCommand) Items() []order.Item {
	return c.items
}

func (c *ModifyItemsCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ModifyItemsCommand) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *ModifyItemsCommand) setItems(lines []ItemLine) error {
	items, err := itemsFromLines(lines)
	if err != nil {
		return err
	}

	c.items = items
	return nil
}
