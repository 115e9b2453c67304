package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/guard"
)

var ErrSubmitFeedbackCommandIsNotConstructed = errors.New(
	"SubmitFeedbackCommand must be created via NewSubmitFeedbackCommand constructor",
)

// SubmitFeedbackCommand rates a delivered order from 1 to 5.
type SubmitFeedbackCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	feedback order.Feedback

	guard guard.ConstructorGuard
}

// NewSubmitFeedbackCommand creates a rating for orderID.
// Returns ValueIsOutOfRange when rating is not between 1 and 5.
func NewSubmitFeedbackCommand(orderID kernel.UUID, rating int, comment string) (SubmitFeedbackCommand, error) {
	cmd := SubmitFeedbackCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setFeedback(rating, comment),
	); err != nil {
		return SubmitFeedbackCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSubmitFeedbackCommandIsNotConstructed otherwise.
func (c SubmitFeedbackCommand) Validate() error {
	return c.guard.Validate(ErrSubmitFeedbackCommandIsNotConstructed)
}

// OrderID returns the rated order.
func (c SubmitFeedbackCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Feedback returns the validated rating and comment.
func (c SubmitFeedbackCommand) Feedback() order.Feedback {
	return c.feedback
}

func (c *SubmitFeedbackCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SubmitFeedbackCommand) setFeedback(rating int, comment string) error {
	feedback, err := order.NewFeedback(rating, comment)
	if err != nil {
		return err
	}

	c.feedback = feedback
	return nil
}
