// Package ports defines the contracts between the ordering core and its adapters.
package ports

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Add and Update also write the aggregate's pending StatusChanged events to the
// outbox within the same transaction.
type OrderRepository interface {
	// Add persists a new order. A duplicate id is a ConcurrentModificationError.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes guarded by the version read in Get.
	// Returns ObjectNotFoundError when the order is gone and
	// ConcurrentModificationError when another writer got there first.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves the complete aggregate including items and audit trail.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// FindDueCredit returns unpaid credit orders whose due date is on or
	// before asOf, excluding CLOSED ones. Read-only.
	FindDueCredit(ctx context.Context, asOf time.Time) ([]*order.Order, error)
}
