// Package commands contains the operations that change orders.
// Every handler follows the same shape: validate the command, open a unit of
// work, load, apply one Lifecycle operation, persist, commit.
package commands

import (
	"context"

	"ordering/internal/core/ports"
)

type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CatalogRepoFactory provides access to client and product reference checks.
	CatalogRepoFactory interface {
		CatalogRepository() ports.CatalogRepository
	}

	// OutboxRepoFactory provides access to pending integration events.
	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// OrderUoW manages transactions for commands touching a single order.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CatalogOrderUoW is used by commands that must check references before
	// changing an order's items.
	CatalogOrderUoW interface {
		TxManager
		OrderRepoFactory
		CatalogRepoFactory
	}

	// CatalogOrderUoWFactory creates new catalog-aware unit of work instances.
	CatalogOrderUoWFactory interface {
		Create() CatalogOrderUoW
	}

	// OutboxUoW manages the relay transaction over pending messages.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	// OutboxUoWFactory creates new outbox unit of work instances.
	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)
