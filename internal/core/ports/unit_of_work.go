package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Repositories obtained after Begin run inside the transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	// Rollback is a no-op error after Commit, so it is safe to defer.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	CatalogRepository() CatalogRepository
	OutboxRepository() OutboxRepository
}
