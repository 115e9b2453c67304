package queries

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrListCatalogItemsQueryIsNotConstructed = errors.New(
	"ListCatalogItemsQuery must be created via NewListCatalogItemsQuery constructor",
)

// ListCatalogItemsQuery lists the active products a client can order.
type ListCatalogItemsQuery struct {
	guard guard.ConstructorGuard
}

// NewListCatalogItemsQuery creates a catalog listing. It takes no parameters.
func NewListCatalogItemsQuery() ListCatalogItemsQuery {
	return ListCatalogItemsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrListCatalogItemsQueryIsNotConstructed otherwise.
func (q ListCatalogItemsQuery) Validate() error {
	return q.guard.Validate(ErrListCatalogItemsQueryIsNotConstructed)
}

// CatalogItem is one orderable product as shown to clients.
type CatalogItem struct {
	ID          kernel.UUID
	Name        string
	Description string
	Unit        string
}
