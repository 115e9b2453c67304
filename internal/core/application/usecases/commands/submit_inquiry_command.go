package commands

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrSubmitInquiryCommandIsNotConstructed = errors.New(
	"SubmitInquiryCommand must be created via NewSubmitInquiryCommand constructor",
)

// ItemLine is a requested product and quantity, before pricing.
type ItemLine struct {
	ProductRef kernel.UUID
	Quantity   int
}

// SubmitInquiryCommand represents a client's request for a quote.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewSubmitInquiryCommand(orderID, clientID, []ItemLine{{ProductRef: steelID, Quantity: 100}})
//	if err != nil {
//	    return fmt.Errorf("invalid inquiry: %w", err)
//	}
//	err = handler.Handle(ctx, cmd)
type SubmitInquiryCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	clientRef kernel.UUID
	items     []order.Item

	guard guard.ConstructorGuard
}

// NewSubmitInquiryCommand validates the ids and every line. The caller chooses
// the order id so it can read the order back after the command succeeds.
func NewSubmitInquiryCommand(orderID, clientRef kernel.UUID, lines []ItemLine) (SubmitInquiryCommand, error) {
	cmd := SubmitInquiryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setClientRef(clientRef),
		cmd.setItems(lines),
	); err != nil {
		return SubmitInquiryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSubmitInquiryCommandIsNotConstructed otherwise.
func (c SubmitInquiryCommand) Validate() error {
	return c.guard.Validate(ErrSubmitInquiryCommandIsNotConstructed)
}

// OrderID returns the identifier chosen for the new order.
func (c SubmitInquiryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ClientRef returns the submitting client.
func (c SubmitInquiryCommand) ClientRef() kernel.UUID {
	return c.clientRef
}

// Items returns the requested, unpriced lines.
func (c SubmitInquiryCommand) Items() []order.Item {
	return c.items
}

func (c *SubmitInquiryCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SubmitInquiryCommand) setClientRef(clientRef kernel.UUID) error {
	if err := clientRef.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("clientRef", err)
	}

	c.clientRef = clientRef
	return nil
}

func (c *SubmitInquiryCommand) setItems(lines []ItemLine) error {
	items, err := itemsFromLines(lines)
	if err != nil {
		return err
	}

	c.items = items
	return nil
}

// itemsFromLines builds unpriced order lines. Emptiness and duplicates are
// checked by the order itself.
func itemsFromLines(lines []ItemLine) ([]order.Item, error) {
	if len(lines) == 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("items", errors.New("at least one item is required"))
	}

	items := make([]order.Item, 0, len(lines))
	for idx, line := range lines {
		item, err := order.NewItem(line.ProductRef, line.Quantity)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", idx), err)
		}
		items = append(items, item)
	}

	return items, nil
}

func productRefs(items []order.Item) []kernel.UUID {
	refs := make([]kernel.UUID, 0, len(items))
	for _, item := range items {
		refs = append(refs, item.ProductRef())
	}
	return refs
}
