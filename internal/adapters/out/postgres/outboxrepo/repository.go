package outboxrepo

import (
	"context"
	"time"

	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Append stores messages written alongside an aggregate. It must run in the
// aggregate's transaction.
func (r *GormOutboxRepository) Append(ctx context.Context, dtos []OutboxDTO) error {
	if len(dtos) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&dtos).Error
}

// FetchPending locks unsent rows with SKIP LOCKED so concurrent relays never
// pick the same message. The lock lasts until the surrounding transaction ends.
func (r *GormOutboxRepository) FetchPending(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit < 1 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	var dtos []OutboxDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("sent_at IS NULL").
		Order("id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		messages = append(messages, toMessage(dto))
	}
	return messages, nil
}

func (r *GormOutboxRepository) MarkSent(ctx context.Context, ids []int64, sentAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&OutboxDTO{}).
		Where("id IN ? AND sent_at IS NULL", ids).
		Update("sent_at", sentAt.UTC()).Error
}
