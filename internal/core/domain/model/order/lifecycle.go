package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/clock"
	"ordering/internal/pkg/errs"
)

// Clock supplies audit timestamps and "today" for credit checks.
type Clock interface {
	Now() time.Time
}

// Lifecycle is the single authority over Status, PaymentStatus and DeliveryStatus.
//
// Transition is the strict, table-driven primitive. SetPricing and ModifyItems
// are business operations that may force a status through the unexported
// Order.setStatus, so nothing outside this package can skip the table.
type Lifecycle struct {
	clock Clock
}

// NewLifecycle returns a Lifecycle stamping audit entries with c.
// A nil clock falls back to the system clock.
//
// Example:
//
//	lc := order.NewLifecycle(clock.System{})
//	o, err := lc.SubmitInquiry(kernel.NewUUID(), clientRef, items)
//	if err != nil {
//	    return err
//	}
//	err = lc.SetPricing(o, prices, order.ActorAdmin)
func NewLifecycle(c Clock) Lifecycle {
	if c == nil {
		c = clock.System{}
	}
	return Lifecycle{clock: c}
}

func (l Lifecycle) now() time.Time {
	return l.clock.Now().UTC()
}

// SubmitInquiry creates an order in NEW_INQUIRY with a CREATED audit entry.
func (l Lifecycle) SubmitInquiry(id, clientRef kernel.UUID, items []Item) (*Order, error) {
	at := l.now()
	o, err := NewOrder(id, clientRef, items, at)
	if err != nil {
		return nil, err
	}
	o.AppendAudit(NewAuditEntry(ActionCreated, ActorClient, "Inquiry submitted", at))
	return o, nil
}

// Transition moves the order along one edge of the transition table.
// Entering CLOSED additionally requires payment PAID and delivery CONFIRMED.
func (l Lifecycle) Transition(o *Order, target Status, actor Actor, note string) error {
	if err := errors.Join(o.Validate(), actor.Validate(), target.Validate()); err != nil {
		return err
	}
	if err := o.status.ValidateTransition(target); err != nil {
		return err
	}
	if target == Closed {
		if err := validateClosable(o); err != nil {
			return err
		}
	}

	from := o.status
	at := l.now()
	o.setStatus(target, actor, at)
	o.AppendAudit(NewAuditEntry(ActionStatusChange, actor, transitionDetail(from, target, note), at))
	return nil
}

// SetPricing prices the matching lines. Before client approval the order is put
// in WAITING_CLIENT_APPROVAL without consulting the table; anywhere else,
// including an order already waiting for approval, only the prices change and
// the audit entry is PRICES_UPDATED.
func (l Lifecycle) SetPricing(o *Order, updates []PriceUpdate, actor Actor) error {
	if err := errors.Join(o.Validate(), actor.Validate()); err != nil {
		return err
	}
	if _, err := o.ApplyPricing(updates); err != nil {
		return err
	}

	at := l.now()
	from := o.status
	if from != WaitingClientApproval && slices.Contains(pricingStatuses, from) {
		o.setStatus(WaitingClientApproval, actor, at)
		o.AppendAudit(NewAuditEntry(ActionStatusChange, actor,
			transitionDetail(from, WaitingClientApproval, "Prices updated."), at))
		return nil
	}
	o.AppendAudit(NewAuditEntry(ActionPricesUpdated, actor,
		fmt.Sprintf("Prices updated. Total order value %s.", o.totalOrderValue.StringFixed(2)), at))
	return nil
}

// ModifyItems replaces the items. Outside NEW_INQUIRY any earlier pricing or
// approval is void, so the order is reset to PENDING_PRICING regardless of
// where it was. Terminal orders cannot be modified.
func (l Lifecycle) ModifyItems(o *Order, items []Item, actor Actor) error {
	if err := errors.Join(o.Validate(), actor.Validate()); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return errs.NewInvalidTransitionErrorWithCause(o.status, PendingPricing,
			errors.New("terminal orders cannot be modified"))
	}
	if err := validateItems(items); err != nil {
		return err
	}

	at := l.now()
	if err := o.ReplaceItems(items); err != nil {
		return err
	}
	if o.status != NewInquiry {
		o.setStatus(PendingPricing, ActorSystem, at)
		o.AppendAudit(NewAuditEntry(ActionStatusReset, ActorSystem,
			fmt.Sprintf("Order modified by client, status reset to %s", PendingPricing), at))
	}
	o.AppendAudit(NewAuditEntry(ActionItemsUpdated, actor, "Items or quantities modified", at))
	return nil
}

// RecordPayment sets the payment status. PAID is also a transition to
// PAYMENT_CLEARED and fails, leaving the order untouched, when the current
// status has no such edge. A confirmed order passes through AWAITING_PAYMENT
// first, each step audited. PENDING is refused in PAYMENT_CLEARED and in
// terminal states.
func (l Lifecycle) RecordPayment(o *Order, status PaymentStatus) error {
	if err := errors.Join(o.Validate(), status.Validate()); err != nil {
		return err
	}

	if status == PaymentPaid {
		route, err := paymentRoute(o.status)
		if err != nil {
			return err
		}
		o.paymentStatus = PaymentPaid
		for _, step := range route {
			if err = l.Transition(o, step, ActorAdmin, "Payment marked as PAID"); err != nil {
				return err
			}
		}
		return nil
	}

	switch {
	case o.status.IsTerminal():
		return errs.NewPreconditionFailedErrorWithCause(
			"payment of a finished order cannot change",
			fmt.Errorf("status is %s", o.status),
		)
	case o.status == PaymentCleared:
		return errs.NewPreconditionFailedErrorWithCause(
			"payment of a cleared order cannot be reopened",
			fmt.Errorf("status is %s", o.status),
		)
	}
	o.paymentStatus = status
	o.AppendAudit(NewAuditEntry(ActionPaymentUpdated, ActorAdmin,
		fmt.Sprintf("Payment status set to %s", status), l.now()))
	return nil
}

// SettleCredit records payment of a credit order that was shipped before it
// was paid. The status does not change; it only unblocks closing.
func (l Lifecycle) SettleCredit(o *Order, actor Actor) error {
	if err := errors.Join(o.Validate(), actor.Validate()); err != nil {
		return err
	}
	switch {
	case o.paymentType != PaymentTypeCredit:
		return errs.NewPreconditionFailedError("only credit orders can be settled")
	case o.paymentStatus == PaymentPaid:
		return errs.NewPreconditionFailedError("payment is already PAID")
	case o.status != InTransit && o.status != Delivered:
		return errs.NewPreconditionFailedErrorWithCause(
			"credit can be settled only for orders in transit or delivered",
			fmt.Errorf("status is %s", o.status),
		)
	}

	o.paymentStatus = PaymentPaid
	o.AppendAudit(NewAuditEntry(ActionPaymentSettled, actor, "Credit payment received", l.now()))
	return nil
}

// ConfirmDelivery marks the goods as received. It is idempotent on the delivery
// status and never changes Status.
func (l Lifecycle) ConfirmDelivery(o *Order, actor Actor) error {
	if err := errors.Join(o.Validate(), actor.Validate()); err != nil {
		return err
	}
	o.deliveryStatus = DeliveryConfirmed
	o.AppendAudit(NewAuditEntry(ActionDeliveryConfirmed, actor, "Client received goods", l.now()))
	return nil
}

// SetPaymentTerms chooses cash or credit. Credit needs a due date, stored by
// calendar day; other types must not carry one.
func (l Lifecycle) SetPaymentTerms(o *Order, paymentType PaymentType, dueDate *time.Time, actor Actor) error {
	if err := errors.Join(o.Validate(), actor.Validate(), paymentType.Validate()); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return errs.NewPreconditionFailedErrorWithCause(
			"payment terms of a finished order cannot change",
			fmt.Errorf("status is %s", o.status),
		)
	}
	switch {
	case paymentType == PaymentTypeCredit && dueDate == nil:
		return errs.NewValueIsRequiredError("creditDueDate")
	case paymentType != PaymentTypeCredit && dueDate != nil:
		return errs.NewValueIsInvalidErrorWithCause("creditDueDate",
			fmt.Errorf("due date is only allowed for %s orders", PaymentTypeCredit))
	}

	at := l.now()
	o.paymentType = paymentType
	if dueDate == nil {
		o.creditDueDate = nil
		o.AppendAudit(NewAuditEntry(ActionUpdated, actor, fmt.Sprintf("Payment type set to %s", paymentType), at))
		return nil
	}
	due := clock.StartOfDay(*dueDate)
	o.creditDueDate = &due
	o.AppendAudit(NewAuditEntry(ActionUpdated, actor,
		fmt.Sprintf("Credit due date extended to %s", due.Format(time.DateOnly)), at))
	return nil
}

// SubmitFeedback stores the client's rating once delivery is confirmed.
func (l Lifecycle) SubmitFeedback(o *Order, feedback Feedback, actor Actor) error {
	if err := errors.Join(o.Validate(), actor.Validate()); err != nil {
		return err
	}
	if feedback.rating < MinRating || feedback.rating > MaxRating {
		return errs.NewValueIsOutOfRangeError("rating", feedback.rating, MinRating, MaxRating)
	}
	if o.deliveryStatus != DeliveryConfirmed {
		return errs.NewPreconditionFailedErrorWithCause(
			"feedback requires confirmed delivery",
			fmt.Errorf("delivery status is %s", o.deliveryStatus),
		)
	}

	fb := feedback
	o.feedback = &fb
	o.AppendAudit(NewAuditEntry(ActionFeedbackSubmitted, actor,
		fmt.Sprintf("Rated %d/%d", feedback.rating, MaxRating), l.now()))
	return nil
}

// paymentRoute lists the table edges walked when payment is received in from.
func paymentRoute(from Status) ([]Status, error) {
	if from == OrderConfirmed {
		return []Status{AwaitingPayment, PaymentCleared}, nil
	}
	if err := from.ValidateTransition(PaymentCleared); err != nil {
		return nil, err
	}
	return []Status{PaymentCleared}, nil
}

func validateClosable(o *Order) error {
	if o.paymentStatus != PaymentPaid || o.deliveryStatus != DeliveryConfirmed {
		return errs.NewPreconditionFailedErrorWithCause(
			"cannot close order: payment must be PAID and delivery CONFIRMED",
			fmt.Errorf("payment is %s, delivery is %s", o.paymentStatus, o.deliveryStatus),
		)
	}
	return nil
}

func transitionDetail(from, to Status, note string) string {
	return strings.TrimSpace(fmt.Sprintf("Changed status from %s to %s. %s", from, to, strings.TrimSpace(note)))
}
