package queries

import (
	"errors"
	"time"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrGetDueCreditOrdersQueryIsNotConstructed = errors.New(
	"GetDueCreditOrdersQuery must be created via NewGetDueCreditOrdersQuery constructor",
)

// GetDueCreditOrdersQuery finds unpaid credit orders due on or before AsOf.
// Only the calendar day of AsOf matters.
type GetDueCreditOrdersQuery struct {
	asOf time.Time

	guard guard.ConstructorGuard
}

// NewGetDueCreditOrdersQuery creates a scan for credit due on or before asOf.
// Returns an error for the zero time.
func NewGetDueCreditOrdersQuery(asOf time.Time) (GetDueCreditOrdersQuery, error) {
	if asOf.IsZero() {
		return GetDueCreditOrdersQuery{}, errs.NewValueIsRequiredError("asOf")
	}

	return GetDueCreditOrdersQuery{asOf: asOf, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetDueCreditOrdersQueryIsNotConstructed otherwise.
func (q GetDueCreditOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetDueCreditOrdersQueryIsNotConstructed)
}

// AsOf returns the reference day.
func (q GetDueCreditOrdersQuery) AsOf() time.Time {
	return q.asOf
}
