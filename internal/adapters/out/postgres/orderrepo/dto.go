package orderrepo

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/AlekSi/pointer"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ClientID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status          string          `gorm:"type:varchar(32);not null;index"`
	PaymentType     string          `gorm:"type:varchar(16);not null"`
	PaymentStatus   string          `gorm:"type:varchar(16);not null"`
	CreditDueDate   *time.Time      `gorm:"type:date"`
	DeliveryStatus  string          `gorm:"type:varchar(16);not null"`
	TotalOrderValue decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	FeedbackRating  *int            `gorm:"type:smallint"`
	FeedbackComment *string
	CreatedAt       time.Time      `gorm:"not null"`
	Version         int64          `gorm:"not null"`
	Items           []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	AuditLogs       []AuditLogDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type OrderItemDTO struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position  int             `gorm:"not null"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	LineTotal decimal.Decimal `gorm:"type:numeric(14,2);not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

type AuditLogDTO struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Seq       int       `gorm:"not null"`
	Action    string    `gorm:"type:varchar(32);not null"`
	Actor     string    `gorm:"type:varchar(16);not null"`
	Detail    string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (AuditLogDTO) TableName() string {
	return "order_audit_logs"
}

// fromDomain maps the order row only. Items and audit entries are written
// separately so the audit log stays insert-only.
func fromDomain(o *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:              o.ID().Raw(),
		ClientID:        o.ClientRef().Raw(),
		Status:          o.Status().String(),
		PaymentType:     string(o.PaymentType()),
		PaymentStatus:   string(o.PaymentStatus()),
		CreditDueDate:   o.CreditDueDate(),
		DeliveryStatus:  string(o.DeliveryStatus()),
		TotalOrderValue: o.TotalOrderValue(),
		CreatedAt:       o.CreatedAt(),
		Version:         o.Version(),
	}
	if fb := o.Feedback(); fb != nil {
		dto.FeedbackRating = pointer.To(fb.Rating())
		dto.FeedbackComment = pointer.To(fb.Comment())
	}
	return dto
}

func itemsFromDomain(o *order.Order) []OrderItemDTO {
	items := o.Items()
	dtos := make([]OrderItemDTO, 0, len(items))
	for idx, item := range items {
		dtos = append(dtos, OrderItemDTO{
			OrderID:   o.ID().Raw(),
			Position:  idx,
			ProductID: item.ProductRef().Raw(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
			LineTotal: item.LineTotal(),
		})
	}
	return dtos
}

// unsavedAuditFromDomain numbers new entries after the ones already stored.
func unsavedAuditFromDomain(o *order.Order) []AuditLogDTO {
	unsaved := o.UnsavedAuditEntries()
	first := len(o.AuditLogs()) - len(unsaved)
	dtos := make([]AuditLogDTO, 0, len(unsaved))
	for idx, entry := range unsaved {
		dtos = append(dtos, AuditLogDTO{
			OrderID:   o.ID().Raw(),
			Seq:       first + idx,
			Action:    string(entry.Action()),
			Actor:     string(entry.Actor()),
			Detail:    entry.Detail(),
			CreatedAt: entry.Timestamp(),
		})
	}
	return dtos
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFrom(dto.ID)
	if err != nil {
		return nil, err
	}
	clientRef, err := kernel.UUIDFrom(dto.ClientID)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		productRef, refErr := kernel.UUIDFrom(itemDTO.ProductID)
		if refErr != nil {
			return nil, refErr
		}
		item, itemErr := order.NewPricedItem(productRef, itemDTO.Quantity, itemDTO.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	logs := make([]order.AuditEntry, 0, len(dto.AuditLogs))
	for _, logDTO := range dto.AuditLogs {
		logs = append(logs, order.NewAuditEntry(
			order.Action(logDTO.Action),
			order.Actor(logDTO.Actor),
			logDTO.Detail,
			logDTO.CreatedAt.UTC(),
		))
	}

	var feedback *order.Feedback
	if dto.FeedbackRating != nil {
		fb, fbErr := order.NewFeedback(*dto.FeedbackRating, pointer.Get(dto.FeedbackComment))
		if fbErr != nil {
			return nil, fbErr
		}
		feedback = &fb
	}

	var dueDate *time.Time
	if dto.CreditDueDate != nil {
		due := time.Date(dto.CreditDueDate.Year(), dto.CreditDueDate.Month(), dto.CreditDueDate.Day(),
			0, 0, 0, 0, time.UTC)
		dueDate = &due
	}

	return order.RestoreOrder(order.Snapshot{
		ID:             id,
		ClientRef:      clientRef,
		CreatedAt:      dto.CreatedAt,
		Items:          items,
		Status:         status,
		PaymentType:    order.PaymentType(dto.PaymentType),
		PaymentStatus:  order.PaymentStatus(dto.PaymentStatus),
		CreditDueDate:  dueDate,
		DeliveryStatus: order.DeliveryStatus(dto.DeliveryStatus),
		Feedback:       feedback,
		AuditLogs:      logs,
		Version:        dto.Version,
	})
}
