package commands

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand moves an order along one edge of the transition table.
//
// Example:
//
//	cmd, err := NewTransitionOrderCommand(orderID, order.InTransit, order.ActorAdmin, "truck 12")
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("dispatch failed: %w", err)
//	}
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  order.Status
	actor   order.Actor
	note    string

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a move of orderID to target by actor.
// The note is appended to the audit detail. Whether the move is allowed is
// decided by the transition table when the command is handled.
func NewTransitionOrderCommand(
	orderID kernel.UUID,
	target order.Status,
	actor order.Actor,
	note string,
) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{
		note:  strings.TrimSpace(note),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
		cmd.setActor(actor),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	return cmd, nil
}

// NewConfirmOrderCommand is the client's approval of a quote.
func NewConfirmOrderCommand(orderID kernel.UUID) (TransitionOrderCommand, error) {
	return NewTransitionOrderCommand(orderID, order.OrderConfirmed, order.ActorClient, "Client confirmed order")
}

// NewDispatchOrderCommand moves the order to IN_TRANSIT as ADMIN.
func NewDispatchOrderCommand(orderID kernel.UUID) (TransitionOrderCommand, error) {
	return NewTransitionOrderCommand(orderID, order.InTransit, order.ActorAdmin, "Order dispatched")
}

// NewDeliverOrderCommand moves the order to DELIVERED as ADMIN.
func NewDeliverOrderCommand(orderID kernel.UUID) (TransitionOrderCommand, error) {
	return NewTransitionOrderCommand(orderID, order.Delivered, order.ActorAdmin, "Order marked as delivered by Admin")
}

// NewCancelOrderCommand moves the order to CANCELLED as ADMIN.
func NewCancelOrderCommand(orderID kernel.UUID) (TransitionOrderCommand, error) {
	return NewTransitionOrderCommand(orderID, order.Cancelled, order.ActorAdmin, "Order cancelled by Admin")
}

// Validate ensures the command was created through the constructor.
// Returns ErrTransitionOrderCommandIsNotConstructed otherwise.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// OrderID returns the order to move.
func (c TransitionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested status.
func (c TransitionOrderCommand) Target() order.Status {
	return c.target
}

// Actor returns who requested the move.
func (c TransitionOrderCommand) Actor() order.Actor {
	return c.actor
}

// Note returns the trimmed free-text reason, possibly empty.
func (c TransitionOrderCommand) Note() string {
	return c.note
}

func (c *TransitionOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *TransitionOrderCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

func (c *TransitionOrderCommand) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
