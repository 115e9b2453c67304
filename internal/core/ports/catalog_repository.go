package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
)

// CatalogRepository answers reference checks against client and product
// records. Those records are managed elsewhere; the ordering core only reads them.
type CatalogRepository interface {
	ClientExists(ctx context.Context, clientRef kernel.UUID) (bool, error)

	// MissingProducts returns the refs that do not exist or are inactive,
	// in the order they were given.
	MissingProducts(ctx context.Context, productRefs []kernel.UUID) ([]kernel.UUID, error)
}
