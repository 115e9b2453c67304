package queries

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/order"
)

// DueCreditFinder is the repository lookup behind the due-credit scan.
type DueCreditFinder interface {
	FindDueCredit(ctx context.Context, asOf time.Time) ([]*order.Order, error)
}

// GetDueCreditOrdersQueryHandler never mutates orders; reminders are the caller's business.
type GetDueCreditOrdersQueryHandler struct {
	orders DueCreditFinder
}

// NewGetDueCreditOrdersQueryHandler creates a handler reading through orders.
func NewGetDueCreditOrdersQueryHandler(orders DueCreditFinder) GetDueCreditOrdersQueryHandler {
	return GetDueCreditOrdersQueryHandler{orders: orders}
}

// Handle returns the matching orders as views, earliest due date first.
// An empty result is an empty slice, not nil.
func (h GetDueCreditOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetDueCreditOrdersQuery,
) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	found, err := h.orders.FindDueCredit(ctx, query.AsOf())
	if err != nil {
		return nil, err
	}

	views := make([]OrderView, 0, len(found))
	for _, o := range found {
		// SQL narrows by date; the aggregate rule decides.
		if !o.IsCreditDue(query.AsOf()) {
			continue
		}
		views = append(views, NewOrderView(o))
	}
	return views, nil
}
