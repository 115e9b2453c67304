package catalogrepo

import (
	"context"

	"ordering/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormCatalogRepository struct {
	db *gorm.DB
}

func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

func (r *GormCatalogRepository) ClientExists(ctx context.Context, clientRef kernel.UUID) (bool, error) {
	if err := clientRef.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&ClientDTO{}).
		Where("id = ?", clientRef.Raw()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormCatalogRepository) MissingProducts(ctx context.Context, productRefs []kernel.UUID) ([]kernel.UUID, error) {
	if len(productRefs) == 0 {
		return nil, nil
	}

	raw := make([]uuid.UUID, 0, len(productRefs))
	for _, ref := range productRefs {
		raw = append(raw, ref.Raw())
	}

	var active []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&CatalogItemDTO{}).
		Where("id IN ? AND is_active", raw).
		Pluck("id", &active).Error
	if err != nil {
		return nil, err
	}

	found := make(map[uuid.UUID]struct{}, len(active))
	for _, id := range active {
		found[id] = struct{}{}
	}

	var missing []kernel.UUID
	for _, ref := range productRefs {
		if _, ok := found[ref.Raw()]; !ok {
			missing = append(missing, ref)
		}
	}
	return missing, nil
}
