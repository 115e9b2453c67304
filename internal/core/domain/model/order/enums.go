package order

import (
	"fmt"

	"ordering/internal/pkg/errs"
)

// PaymentType is how the client settles the order. It starts as NOT_SET and is
// chosen by an admin through Lifecycle.SetPaymentTerms.
type PaymentType string

const (
	// PaymentTypeNotSet is the default until payment terms are agreed.
	PaymentTypeNotSet PaymentType = "NOT_SET"
	// PaymentTypeCash is paid before or on dispatch.
	PaymentTypeCash PaymentType = "CASH"
	// PaymentTypeCredit is paid by a due date, possibly after delivery.
	PaymentTypeCredit PaymentType = "CREDIT"
)

// Validate returns ValueIsInvalid for anything outside the three payment types.
func (p PaymentType) Validate() error {
	switch p {
	case PaymentTypeNotSet, PaymentTypeCash, PaymentTypeCredit:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("paymentType", fmt.Errorf("%q is not a valid payment type", p))
}

// PaymentStatus records whether money was received.
//
// PAID is required before an order can be CLOSED.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
)

// Validate returns ValueIsInvalid for anything other than PENDING or PAID.
func (p PaymentStatus) Validate() error {
	switch p {
	case PaymentPending, PaymentPaid:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("paymentStatus", fmt.Errorf("%q is not a valid payment status", p))
}

// DeliveryStatus is tracked independently of Status; only CONFIRMED gates closing.
type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "PENDING"
	DeliveryInTransit DeliveryStatus = "IN_TRANSIT"
	DeliveryDelivered DeliveryStatus = "DELIVERED"
	// DeliveryConfirmed is set by the client on receipt of the goods.
	DeliveryConfirmed DeliveryStatus = "CONFIRMED"
)

// Validate returns ValueIsInvalid for an unknown delivery status.
func (d DeliveryStatus) Validate() error {
	switch d {
	case DeliveryPending, DeliveryInTransit, DeliveryDelivered, DeliveryConfirmed:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("deliveryStatus", fmt.Errorf("%q is not a valid delivery status", d))
}

// Actor is who performed an audited action.
type Actor string

const (
	ActorClient Actor = "CLIENT"
	ActorAdmin  Actor = "ADMIN"
	// ActorSystem marks changes the service makes on its own, such as the
	// pricing reset after a client edits items.
	ActorSystem Actor = "SYSTEM"
)

// Validate returns ValueIsInvalid for an unknown actor.
func (a Actor) Validate() error {
	switch a {
	case ActorClient, ActorAdmin, ActorSystem:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("actor", fmt.Errorf("%q is not a valid actor", a))
}

// Action names an audit log entry.
type Action string

const (
	ActionCreated           Action = "CREATED"
	ActionStatusChange      Action = "STATUS_CHANGE"
	ActionStatusReset       Action = "STATUS_RESET"
	ActionItemsUpdated      Action = "ITEMS_UPDATED"
	ActionPricesUpdated     Action = "PRICES_UPDATED"
	ActionPaymentUpdated    Action = "PAYMENT_UPDATED"
	ActionPaymentSettled    Action = "PAYMENT_SETTLED"
	ActionDeliveryConfirmed Action = "DELIVERY_CONFIRMED"
	ActionFeedbackSubmitted Action = "FEEDBACK_SUBMITTED"
	// ActionUpdated covers payment terms changes.
	ActionUpdated Action = "UPDATED"
)
