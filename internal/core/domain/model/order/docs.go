// Package order implements the Order aggregate and its lifecycle.
//
// The package includes:
//   - Order: the aggregate root holding items, pricing, payment, delivery and the audit log
//   - Item, PriceUpdate, AuditEntry, Feedback: value objects owned by the aggregate
//   - Status: the lifecycle position plus the fixed transition table
//   - Lifecycle: the only code allowed to change Status, PaymentStatus and DeliveryStatus
//
// Key business rules:
//   - TotalOrderValue is always the sum of quantity × unitPrice over the items
//   - Status moves only along the edges of the transition table, except for the two
//     privileged business operations (pricing and item modification) which force a
//     status and still record an audit entry
//   - CLOSED requires payment PAID and delivery CONFIRMED
//   - CLOSED and CANCELLED are terminal
//   - the audit log is append-only
//
// Every Lifecycle operation validates first and mutates second, so a failed call
// leaves the aggregate untouched.
package order
