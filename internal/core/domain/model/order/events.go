package order

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
)

// StatusChanged is raised whenever Status changes, through a transition or a
// forced business operation. Repositories hand pending events to the outbox.
type StatusChanged struct {
	OrderID   kernel.UUID
	ClientRef kernel.UUID
	From      Status
	To        Status
	Actor     Actor
	At        time.Time
}
