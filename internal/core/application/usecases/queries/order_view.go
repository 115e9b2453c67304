package queries

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderView is the read model of a single order with its lines and audit trail.
type OrderView struct {
	ID              kernel.UUID
	ClientRef       kernel.UUID
	Status          order.Status
	PaymentType     order.PaymentType
	PaymentStatus   order.PaymentStatus
	DeliveryStatus  order.DeliveryStatus
	CreditDueDate   *time.Time
	TotalOrderValue decimal.Decimal
	Items           []ItemView
	Feedback        *FeedbackView
	AuditLogs       []AuditView
	CreatedAt       time.Time
	Version         int64
}

// ItemView is one priced or unpriced order line.
type ItemView struct {
	ProductRef kernel.UUID
	Quantity   int
	UnitPrice  decimal.Decimal
	LineTotal  decimal.Decimal
}

// FeedbackView is the client rating.
type FeedbackView struct {
	Rating  int
	Comment string
}

// AuditView is one audit trail entry.
type AuditView struct {
	Action    order.Action
	Actor     order.Actor
	Detail    string
	Timestamp time.Time
}

// NewOrderView flattens the aggregate into its read model.
func NewOrderView(o *order.Order) OrderView {
	view := OrderView{
		ID:              o.ID(),
		ClientRef:       o.ClientRef(),
		Status:          o.Status(),
		PaymentType:     o.PaymentType(),
		PaymentStatus:   o.PaymentStatus(),
		DeliveryStatus:  o.DeliveryStatus(),
		CreditDueDate:   o.CreditDueDate(),
		TotalOrderValue: o.TotalOrderValue(),
		CreatedAt:       o.CreatedAt(),
		Version:         o.Version(),
	}

	items := o.Items()
	view.Items = make([]ItemView, 0, len(items))
	for _, item := range items {
		view.Items = append(view.Items, ItemView{
			ProductRef: item.ProductRef(),
			Quantity:   item.Quantity(),
			UnitPrice:  item.UnitPrice(),
			LineTotal:  item.LineTotal(),
		})
	}

	logs := o.AuditLogs()
	view.AuditLogs = make([]AuditView, 0, len(logs))
	for _, entry := range logs {
		view.AuditLogs = append(view.AuditLogs, AuditView{
			Action:    entry.Action(),
			Actor:     entry.Actor(),
			Detail:    entry.Detail(),
			Timestamp: entry.Timestamp(),
		})
	}

	if fb := o.Feedback(); fb != nil {
		view.Feedback = &FeedbackView{Rating: fb.Rating(), Comment: fb.Comment()}
	}

	return view
}
