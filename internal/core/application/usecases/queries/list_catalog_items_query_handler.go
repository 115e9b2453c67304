package queries

import (
	"context"

	"ordering/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListCatalogItemsQueryHandler reads the catalog table directly with gorm.
type ListCatalogItemsQueryHandler struct {
	db *gorm.DB
}

// NewListCatalogItemsQueryHandler creates a handler over db.
func NewListCatalogItemsQueryHandler(db *gorm.DB) ListCatalogItemsQueryHandler {
	return ListCatalogItemsQueryHandler{db: db}
}

// Handle returns active catalog items sorted by name.
func (h ListCatalogItemsQueryHandler) Handle(
	ctx context.Context,
	query ListCatalogItemsQuery,
) ([]CatalogItem, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			item_name,
			COALESCE(description, ''),
			unit
		FROM catalog_items
		WHERE is_active
		ORDER BY item_name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]CatalogItem, 0)
	for rows.Next() {
		var item CatalogItem
		var id uuid.UUID

		if err = rows.Scan(&id, &item.Name, &item.Description, &item.Unit); err != nil {
			return nil, err
		}

		if item.ID, err = kernel.UUIDFrom(id); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
