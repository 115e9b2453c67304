package queries

import (
	"context"
	"database/sql"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads summaries straight from the orders table.
// Filters are assembled with squirrel using '?' placeholders, which gorm
// rebinds for the postgres dialect.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler over db.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle runs the filtered summary query. Totals come from the stored
// total_order_value column.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	builder := sq.Select(
		"o.id",
		"o.client_id",
		"o.status",
		"o.payment_type",
		"o.payment_status",
		"o.delivery_status",
		"o.total_order_value",
		"o.credit_due_date",
		"o.created_at",
		"COUNT(i.id) AS item_count",
	).
		From("orders o").
		LeftJoin("order_items i ON i.order_id = o.id")

	filter := query.Filter()
	if filter.Status != nil {
		builder = builder.Where(sq.Eq{"o.status": filter.Status.String()})
	}
	if filter.ClientRef != nil {
		builder = builder.Where(sq.Eq{"o.client_id": filter.ClientRef.String()})
	}
	builder = builder.GroupBy("o.id").OrderBy("o.created_at DESC", "o.id")

	stmt, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(stmt, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]OrderSummary, 0)
	for rows.Next() {
		var (
			id, clientID uuid.UUID
			status       string
			summary      OrderSummary
			total        decimal.Decimal
			dueDate      sql.NullTime
			createdAt    time.Time
		)

		err = rows.Scan(
			&id,
			&clientID,
			&status,
			&summary.PaymentType,
			&summary.PaymentStatus,
			&summary.DeliveryStatus,
			&total,
			&dueDate,
			&createdAt,
			&summary.ItemCount,
		)
		if err != nil {
			return nil, err
		}

		if summary.ID, err = kernel.UUIDFrom(id); err != nil {
			return nil, err
		}
		if summary.ClientRef, err = kernel.UUIDFrom(clientID); err != nil {
			return nil, err
		}
		if summary.Status, err = order.ParseStatus(status); err != nil {
			return nil, err
		}
		summary.TotalOrderValue = total
		summary.CreatedAt = createdAt.UTC()
		if dueDate.Valid {
			due := dueDate.Time.UTC()
			summary.CreditDueDate = &due
		}

		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
