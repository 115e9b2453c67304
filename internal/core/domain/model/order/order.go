package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/clock"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrOrderIsNotConstructed is returned when an Order did not come from NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order is the aggregate root of the ordering domain.
//
// Fields are private. Items and pricing change through ReplaceItems and
// ApplyPricing; status, payment and delivery change only through Lifecycle.
//
// Example:
//
//	steel, _ := order.NewItem(steelRef, 100)
//	o, err := order.NewOrder(kernel.NewUUID(), clientRef, []order.Item{steel}, time.Now())
//	if err != nil {
//	    return err
//	}
//	o.Status()          // NEW_INQUIRY
//	o.TotalOrderValue() // 0 until priced
type Order struct {
	id        kernel.UUID
	clientRef kernel.UUID
	createdAt time.Time

	items           []Item
	totalOrderValue decimal.Decimal

	status         Status
	paymentType    PaymentType
	paymentStatus  PaymentStatus
	creditDueDate  *time.Time
	deliveryStatus DeliveryStatus
	feedback       *Feedback

	auditLogs []AuditEntry

	// version is the optimistic concurrency token read from storage.
	version int64
	// persistedAudit is how many audit entries storage already holds.
	persistedAudit int
	events         []StatusChanged

	isConstructed bool
}

// NewOrder creates an inquiry in NEW_INQUIRY with payment NOT_SET/PENDING and
// delivery PENDING.
func NewOrder(id, clientRef kernel.UUID, items []Item, createdAt time.Time) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		validateClientRef(clientRef),
		validateItems(items),
	); err != nil {
		return nil, err
	}

	o := &Order{
		id:             id,
		clientRef:      clientRef,
		createdAt:      createdAt.UTC(),
		status:         NewInquiry,
		paymentType:    PaymentTypeNotSet,
		paymentStatus:  PaymentPending,
		deliveryStatus: DeliveryPending,
		isConstructed:  true,
	}
	o.items = slices.Clone(items)
	o.recalculate()
	return o, nil
}

// Snapshot is the full persisted state of an order, used to rebuild the aggregate.
type Snapshot struct {
	ID             kernel.UUID
	ClientRef      kernel.UUID
	CreatedAt      time.Time
	Items          []Item
	Status         Status
	PaymentType    PaymentType
	PaymentStatus  PaymentStatus
	CreditDueDate  *time.Time
	DeliveryStatus DeliveryStatus
	Feedback       *Feedback
	AuditLogs      []AuditEntry
	Version        int64
}

// RestoreOrder rebuilds an order from storage. The total is recomputed from the
// items rather than trusted.
func RestoreOrder(s Snapshot) (*Order, error) {
	if err := errors.Join(
		s.ID.Validate(),
		validateClientRef(s.ClientRef),
		validateItems(s.Items),
		s.Status.Validate(),
		s.PaymentType.Validate(),
		s.PaymentStatus.Validate(),
		s.DeliveryStatus.Validate(),
	); err != nil {
		return nil, err
	}

	o := &Order{
		id:             s.ID,
		clientRef:      s.ClientRef,
		createdAt:      s.CreatedAt.UTC(),
		items:          slices.Clone(s.Items),
		status:         s.Status,
		paymentType:    s.PaymentType,
		paymentStatus:  s.PaymentStatus,
		deliveryStatus: s.DeliveryStatus,
		auditLogs:      slices.Clone(s.AuditLogs),
		version:        s.Version,
		persistedAudit: len(s.AuditLogs),
		isConstructed:  true,
	}
	if s.CreditDueDate != nil {
		due := *s.CreditDueDate
		o.creditDueDate = &due
	}
	if s.Feedback != nil {
		fb := *s.Feedback
		o.feedback = &fb
	}
	o.recalculate()
	return o, nil
}

// Validate returns ErrOrderIsNotConstructed for a nil or zero-value order.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by identity only.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// ClientRef returns the client who submitted the inquiry.
func (o *Order) ClientRef() kernel.UUID {
	return o.clientRef
}

// CreatedAt returns the submission time in UTC.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	return slices.Clone(o.items)
}

// TotalOrderValue returns the sum of the line totals.
func (o *Order) TotalOrderValue() decimal.Decimal {
	return o.totalOrderValue
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// PaymentType returns the agreed payment terms.
func (o *Order) PaymentType() PaymentType {
	return o.paymentType
}

// PaymentStatus returns PENDING or PAID.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// CreditDueDate is nil unless credit terms were set.
func (o *Order) CreditDueDate() *time.Time {
	if o.creditDueDate == nil {
		return nil
	}
	due := *o.creditDueDate
	return &due
}

// DeliveryStatus returns the delivery progress as confirmed so far.
func (o *Order) DeliveryStatus() DeliveryStatus {
	return o.deliveryStatus
}

// Feedback returns a copy of the client rating, or nil before one is given.
func (o *Order) Feedback() *Feedback {
	if o.feedback == nil {
		return nil
	}
	fb := *o.feedback
	return &fb
}

// AuditLogs returns a copy of the audit trail, oldest first.
func (o *Order) AuditLogs() []AuditEntry {
	return slices.Clone(o.auditLogs)
}

// Version returns the optimistic concurrency token of the loaded state.
// A new order has version 0 until it is first stored.
func (o *Order) Version() int64 {
	return o.version
}

// IsCreditDue reports whether the order is an unpaid credit order whose due date
// is on or before asOf (compared by calendar day) and which is not closed.
func (o *Order) IsCreditDue(asOf time.Time) bool {
	if o.paymentType != PaymentTypeCredit || o.paymentStatus != PaymentPending {
		return false
	}
	if o.creditDueDate == nil || o.status == Closed {
		return false
	}
	return !clock.StartOfDay(*o.creditDueDate).After(clock.StartOfDay(asOf))
}

// ReplaceItems swaps the whole item list and recomputes the totals.
// It does not touch Status; Lifecycle.ModifyItems decides what happens to it.
func (o *Order) ReplaceItems(items []Item) error {
	if err := validateItems(items); err != nil {
		return err
	}
	o.items = slices.Clone(items)
	o.recalculate()
	return nil
}

// ApplyPricing sets the unit price of every line whose product matches an update.
// Updates for products not on the order are skipped. It returns how many lines
// were priced.
func (o *Order) ApplyPricing(updates []PriceUpdate) (int, error) {
	for idx, u := range updates {
		if err := errors.Join(u.productRef.Validate(), validateUnitPrice(u.unitPrice)); err != nil {
			return 0, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("prices[%d]", idx), err)
		}
	}

	matched := 0
	for _, u := range updates {
		for i := range o.items {
			if o.items[i].productRef.IsEqual(u.productRef) {
				o.items[i] = o.items[i].withUnitPrice(u.unitPrice)
				matched++
			}
		}
	}
	o.recalculate()
	return matched, nil
}

// AppendAudit adds one entry to the trail, stamping it with the current UTC time
// when it carries none.
func (o *Order) AppendAudit(entry AuditEntry) {
	if entry.timestamp.IsZero() {
		entry.timestamp = time.Now().UTC()
	}
	o.auditLogs = append(o.auditLogs, entry)
}

// UnsavedAuditEntries returns the entries appended since the order was loaded or
// last marked persisted.
func (o *Order) UnsavedAuditEntries() []AuditEntry {
	return slices.Clone(o.auditLogs[o.persistedAudit:])
}

// PendingEvents returns the status changes not yet handed to storage.
func (o *Order) PendingEvents() []StatusChanged {
	return slices.Clone(o.events)
}

// MarkPersisted is called by repositories after a successful write with the new
// version token.
func (o *Order) MarkPersisted(version int64) {
	o.version = version
	o.persistedAudit = len(o.auditLogs)
	o.events = nil
}

func (o *Order) recalculate() {
	total := decimal.Zero
	for _, item := range o.items {
		total = total.Add(item.LineTotal())
	}
	o.totalOrderValue = total
}

func (o *Order) setStatus(to Status, actor Actor, at time.Time) {
	from := o.status
	o.status = to
	o.events = append(o.events, StatusChanged{
		OrderID:   o.id,
		ClientRef: o.clientRef,
		From:      from,
		To:        to,
		Actor:     actor,
		At:        at,
	})
}

func validateClientRef(clientRef kernel.UUID) error {
	if err := clientRef.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("clientRef", err)
	}
	return nil
}
