// Package kernel holds the shared value objects of the ordering domain.
//
// UUID identifies orders, clients and catalog items. Its zero value is invalid,
// so an identifier that was never assigned is caught at the aggregate boundary
// rather than persisted as the nil UUID.
package kernel
