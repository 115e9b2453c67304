package commands

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrSetPricingCommandIsNotConstructed = errors.New(
	"SetPricingCommand must be created via NewSetPricingCommand constructor",
)

// PriceLine is the unit price an admin quotes for one product of the order.
type PriceLine struct {
	ProductRef kernel.UUID
	UnitPrice  decimal.Decimal
}

// SetPricingCommand quotes prices for an inquiry. Lines for products that are
// not on the order are ignored.
type SetPricingCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   order.Actor
	updates []order.PriceUpdate

	guard guard.ConstructorGuard
}

// NewSetPricingCommand creates a quote for orderID.
// Every line must carry a product and a non-negative price with at most
// order.MoneyScale decimal places; the first bad line is reported as prices[i].
func NewSetPricingCommand(orderID kernel.UUID, actor order.Actor, lines []PriceLine) (SetPricingCommand, error) {
	cmd := SetPricingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		cmd.setUpdates(lines),
	); err != nil {
		return SetPricingCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSetPricingCommandIsNotConstructed otherwise.
func (c SetPricingCommand) Validate() error {
	return c.guard.Validate(ErrSetPricingCommandIsNotConstructed)
}

// OrderID returns the order being quoted.
func (c SetPricingCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns who quoted the prices.
func (c SetPricingCommand) Actor() order.Actor {
	return c.actor
}

// Updates returns the validated prices in request order.
func (c SetPricingCommand) Updates() []order.PriceUpdate {
	return c.updates
}

func (c *SetPricingCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SetPricingCommand) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *SetPricingCommand) setUpdates(lines []PriceLine) error {
	updates := make([]order.PriceUpdate, 0, len(lines))
	for idx, line := range lines {
		update, err := order.NewPriceUpdate(line.ProductRef, line.UnitPrice)
		if err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("prices[%d]", idx), err)
		}
		updates = append(updates, update)
	}

	c.updates = updates
	return nil
}
