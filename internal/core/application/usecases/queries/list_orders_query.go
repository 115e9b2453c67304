package queries

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// OrderFilter narrows ListOrdersQuery. Nil fields match everything.
type OrderFilter struct {
	Status    *order.Status
	ClientRef *kernel.UUID
}

// ListOrdersQuery lists order summaries, newest first. It backs the admin
// order and inquiry lists and the client's order history.
type ListOrdersQuery struct {
	filter OrderFilter

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a listing restricted by filter.
// Returns an error when a filter field is set to an invalid value.
func NewListOrdersQuery(filter OrderFilter) (ListOrdersQuery, error) {
	var errList []error
	if filter.Status != nil {
		errList = append(errList, filter.Status.Validate())
	}
	if filter.ClientRef != nil {
		errList = append(errList, filter.ClientRef.Validate())
	}
	if err := errors.Join(errList...); err != nil {
		return ListOrdersQuery{}, err
	}

	return ListOrdersQuery{filter: filter, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrListOrdersQueryIsNotConstructed otherwise.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Filter returns the restrictions to apply.
func (q ListOrdersQuery) Filter() OrderFilter {
	return q.filter
}

// OrderSummary is one row of an order list.
type OrderSummary struct {
	ID              kernel.UUID
	ClientRef       kernel.UUID
	Status          order.Status
	PaymentType     order.PaymentType
	PaymentStatus   order.PaymentStatus
	DeliveryStatus  order.DeliveryStatus
	TotalOrderValue decimal.Decimal
	CreditDueDate   *time.Time
	ItemCount       int
	CreatedAt       time.Time
}
