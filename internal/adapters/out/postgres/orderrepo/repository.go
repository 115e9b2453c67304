package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ordering/internal/adapters/out/postgres/outboxrepo"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// pgUniqueViolation is SQLSTATE unique_violation.
const pgUniqueViolation = "23505"

// GormOrderRepository stores the aggregate across orders, order_items and
// order_audit_logs and writes pending status events to the outbox. Each write
// runs in its own transaction, or in a savepoint when the handle already is one.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	const version = 1
	dto := fromDomain(aggregate)
	dto.Version = version

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&dto).Error; err != nil {
			if isUniqueViolation(err) {
				return errs.NewConcurrentModificationErrorWithCause("order", aggregate.ID(), err)
			}
			return err
		}
		return r.writeChildren(tx, aggregate, false)
	})
	if err != nil {
		return err
	}

	aggregate.MarkPersisted(version)
	return nil
}

func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&OrderDTO{}).
			Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
			Updates(map[string]any{
				"status":            dto.Status,
				"payment_type":      dto.PaymentType,
				"payment_status":    dto.PaymentStatus,
				"credit_due_date":   dto.CreditDueDate,
				"delivery_status":   dto.DeliveryStatus,
				"total_order_value": dto.TotalOrderValue,
				"feedback_rating":   dto.FeedbackRating,
				"feedback_comment":  dto.FeedbackComment,
				"version":           gorm.Expr("version + 1"),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return r.staleWriteError(tx, aggregate.ID())
		}
		return r.writeChildren(tx, aggregate, true)
	})
	if err != nil {
		return err
	}

	aggregate.MarkPersisted(aggregate.Version() + 1)
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.preloaded(ctx).First(&dto, "id = ?", id.Raw()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindDueCredit compares calendar days only; the due date column is a DATE.
func (r *GormOrderRepository) FindDueCredit(ctx context.Context, asOf time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.preloaded(ctx).
		Where("payment_type = ? AND payment_status = ? AND status <> ?",
			string(order.PaymentTypeCredit), string(order.PaymentPending), order.Closed.String()).
		Where("credit_due_date <= ?", asOf.UTC().Format(time.DateOnly)).
		Order("credit_due_date, created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, fmt.Errorf("restore order %s: %w", dto.ID, err)
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *GormOrderRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("AuditLogs", func(db *gorm.DB) *gorm.DB { return db.Order("seq") })
}

// writeChildren replaces the item rows, appends new audit rows and queues
// pending events.
func (r *GormOrderRepository) writeChildren(tx *gorm.DB, aggregate *order.Order, replaceItems bool) error {
	if replaceItems {
		if err := tx.Where("order_id = ?", aggregate.ID().Raw()).Delete(&OrderItemDTO{}).Error; err != nil {
			return err
		}
	}
	if items := itemsFromDomain(aggregate); len(items) > 0 {
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
	}

	if logs := unsavedAuditFromDomain(aggregate); len(logs) > 0 {
		if err := tx.Create(&logs).Error; err != nil {
			if isUniqueViolation(err) {
				return errs.NewConcurrentModificationErrorWithCause("order", aggregate.ID(), err)
			}
			return err
		}
	}

	messages, err := outboxFromEvents(aggregate.PendingEvents())
	if err != nil {
		return fmt.Errorf("encode order events: %w", err)
	}
	return outboxrepo.NewGormOutboxRepository(tx).Append(tx.Statement.Context, messages)
}

func (r *GormOrderRepository) staleWriteError(tx *gorm.DB, id kernel.UUID) error {
	var count int64
	if err := tx.Model(&OrderDTO{}).Where("id = ?", id.Raw()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return errs.NewConcurrentModificationError("order", id.String())
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
