package http

import (
	"time"

	"ordering/internal/core/application/usecases/queries"

	"github.com/shopspring/decimal"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type ItemLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type InquiryRequest struct {
	ClientID string     `json:"clientId"`
	Items    []ItemLine `json:"items"`
}

type ModifyItemsRequest struct {
	Items []ItemLine `json:"items"`
}

type PriceLine struct {
	ProductID string          `json:"productId"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type PricingRequest struct {
	Items []PriceLine `json:"items"`
}

type PaymentRequest struct {
	Status string `json:"status"`
}

type PaymentTermsRequest struct {
	PaymentType   string  `json:"paymentType"`
	CreditDueDate *string `json:"creditDueDate,omitempty"`
}

type StatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
}

type FeedbackRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Unit        string `json:"unit"`
}

type OrderItem struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

type AuditEntry struct {
	Action    string    `json:"action"`
	Actor     string    `json:"actor"`
	Detail    string    `json:"detail"`
	Timestamp time.Time `json:"timestamp"`
}

type Feedback struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type Order struct {
	ID              string          `json:"id"`
	ClientID        string          `json:"clientId"`
	Status          string          `json:"status"`
	PaymentType     string          `json:"paymentType"`
	PaymentStatus   string          `json:"paymentStatus"`
	DeliveryStatus  string          `json:"deliveryStatus"`
	CreditDueDate   *string         `json:"creditDueDate"`
	TotalOrderValue decimal.Decimal `json:"totalOrderValue"`
	Items           []OrderItem     `json:"items"`
	Feedback        *Feedback       `json:"feedback,omitempty"`
	AuditLogs       []AuditEntry    `json:"auditLogs"`
	CreatedAt       time.Time       `json:"createdAt"`
	Version         int64           `json:"version"`
}

type OrderSummary struct {
	ID              string          `json:"id"`
	ClientID        string          `json:"clientId"`
	Status          string          `json:"status"`
	PaymentType     string          `json:"paymentType"`
	PaymentStatus   string          `json:"paymentStatus"`
	DeliveryStatus  string          `json:"deliveryStatus"`
	CreditDueDate   *string         `json:"creditDueDate"`
	TotalOrderValue decimal.Decimal `json:"totalOrderValue"`
	ItemCount       int             `json:"itemCount"`
	CreatedAt       time.Time       `json:"createdAt"`
}

func toOrder(v queries.OrderView) Order {
	resp := Order{
		ID:              v.ID.String(),
		ClientID:        v.ClientRef.String(),
		Status:          v.Status.String(),
		PaymentType:     string(v.PaymentType),
		PaymentStatus:   string(v.PaymentStatus),
		DeliveryStatus:  string(v.DeliveryStatus),
		CreditDueDate:   formatDate(v.CreditDueDate),
		TotalOrderValue: v.TotalOrderValue,
		Items:           make([]OrderItem, 0, len(v.Items)),
		AuditLogs:       make([]AuditEntry, 0, len(v.AuditLogs)),
		CreatedAt:       v.CreatedAt,
		Version:         v.Version,
	}
	for _, item := range v.Items {
		resp.Items = append(resp.Items, OrderItem{
			ProductID: item.ProductRef.String(),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal,
		})
	}
	for _, entry := range v.AuditLogs {
		resp.AuditLogs = append(resp.AuditLogs, AuditEntry{
			Action:    string(entry.Action),
			Actor:     string(entry.Actor),
			Detail:    entry.Detail,
			Timestamp: entry.Timestamp,
		})
	}
	if v.Feedback != nil {
		resp.Feedback = &Feedback{Rating: v.Feedback.Rating, Comment: v.Feedback.Comment}
	}
	return resp
}

func toOrders(views []queries.OrderView) []Order {
	resp := make([]Order, 0, len(views))
	for _, v := range views {
		resp = append(resp, toOrder(v))
	}
	return resp
}

func toSummaries(rows []queries.OrderSummary) []OrderSummary {
	resp := make([]OrderSummary, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, OrderSummary{
			ID:              r.ID.String(),
			ClientID:        r.ClientRef.String(),
			Status:          r.Status.String(),
			PaymentType:     string(r.PaymentType),
			PaymentStatus:   string(r.PaymentStatus),
			DeliveryStatus:  string(r.DeliveryStatus),
			CreditDueDate:   formatDate(r.CreditDueDate),
			TotalOrderValue: r.TotalOrderValue,
			ItemCount:       r.ItemCount,
			CreatedAt:       r.CreatedAt,
		})
	}
	return resp
}

func toProducts(items []queries.CatalogItem) []Product {
	resp := make([]Product, 0, len(items))
	for _, item := range items {
		resp = append(resp, Product{
			ID:          item.ID.String(),
			Name:        item.Name,
			Description: item.Description,
			Unit:        item.Unit,
		})
	}
	return resp
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.DateOnly)
	return &s
}
