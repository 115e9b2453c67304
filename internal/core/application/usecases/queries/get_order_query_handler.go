package queries

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OrderGetter loads a full aggregate. The postgres order repository satisfies it
// outside of a unit of work.
type OrderGetter interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}

// GetOrderQueryHandler loads one order for display.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(orderrepo.NewGormOrderRepository(db))
//	query, _ := NewGetOrderQuery(orderID)
//
//	view, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    return nil, err
//	}
//	fmt.Println(view.Status, view.TotalOrderValue)
type GetOrderQueryHandler struct {
	orders OrderGetter
}

// NewGetOrderQueryHandler creates a handler reading through orders.
func NewGetOrderQueryHandler(orders OrderGetter) GetOrderQueryHandler {
	return GetOrderQueryHandler{orders: orders}
}

// Handle returns ObjectNotFoundError from the repository unchanged.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return OrderView{}, err
	}

	return NewOrderView(o), nil
}
