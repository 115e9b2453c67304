package order

import (
	"fmt"
	"slices"

	"ordering/internal/pkg/errs"
)

// Status is the lifecycle position of an order.
//
//	NEW_INQUIRY ⇄ PENDING_PRICING → WAITING_CLIENT_APPROVAL → ORDER_CONFIRMED
//	ORDER_CONFIRMED → AWAITING_PAYMENT → PAYMENT_CLEARED → IN_TRANSIT → DELIVERED → CLOSED
//	(shipping may start before payment clears; every non-terminal state except DELIVERED
//	can be CANCELLED)
//
// The full edge set is in transitions.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	NewInquiry
	PendingPricing
	WaitingClientApproval
	OrderConfirmed
	AwaitingPayment
	PaymentCleared
	InTransit
	Delivered
	Closed
	Cancelled
)

var statusNames = map[Status]string{
	NewInquiry:            "NEW_INQUIRY",
	PendingPricing:        "PENDING_PRICING",
	WaitingClientApproval: "WAITING_CLIENT_APPROVAL",
	OrderConfirmed:        "ORDER_CONFIRMED",
	AwaitingPayment:       "AWAITING_PAYMENT",
	PaymentCleared:        "PAYMENT_CLEARED",
	InTransit:             "IN_TRANSIT",
	Delivered:             "DELIVERED",
	Closed:                "CLOSED",
	Cancelled:             "CANCELLED",
}

// transitions is built once at package initialisation and never written afterwards.
var transitions = map[Status][]Status{
	NewInquiry:            {PendingPricing, WaitingClientApproval, Cancelled},
	PendingPricing:        {WaitingClientApproval, NewInquiry, Cancelled},
	WaitingClientApproval: {OrderConfirmed, PendingPricing, Cancelled},
	OrderConfirmed:        {AwaitingPayment, InTransit, Delivered, Cancelled},
	AwaitingPayment:       {PaymentCleared, InTransit, Delivered, Cancelled},
	PaymentCleared:        {InTransit, Delivered, Cancelled},
	InTransit:             {Delivered, Cancelled},
	Delivered:             {Closed},
	Closed:                {},
	Cancelled:             {},
}

// pricingStatuses are the states from which setting prices moves the order to
// WAITING_CLIENT_APPROVAL.
var pricingStatuses = []Status{NewInquiry, PendingPricing, WaitingClientApproval}

// Statuses lists every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{
		NewInquiry, PendingPricing, WaitingClientApproval, OrderConfirmed, AwaitingPayment,
		PaymentCleared, InTransit, Delivered, Closed, Cancelled,
	}
}

// ParseStatus converts the persisted/wire name back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// String returns the wire name, e.g. "AWAITING_PAYMENT".
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// Validate rejects Unknown and out-of-range values, e.g. from storage.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == Closed || s == Cancelled
}

// AllowedTransitions returns a copy of the destinations reachable from s.
func (s Status) AllowedTransitions() []Status {
	return slices.Clone(transitions[s])
}

// CanTransitionTo reports whether s → to is an edge of the table.
func (s Status) CanTransitionTo(to Status) bool {
	return slices.Contains(transitions[s], to)
}

// ValidateTransition returns an InvalidTransitionError unless s → to is an edge.
func (s Status) ValidateTransition(to Status) error {
	if !s.CanTransitionTo(to) {
		return errs.NewInvalidTransitionError(s, to)
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler. Unknown fails.
func (s Status) MarshalText() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseStatus.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
