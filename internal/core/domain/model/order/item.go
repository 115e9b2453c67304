package order

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fraction digits a unit price may carry. Storage
// keeps money at this scale, so anything finer would be rounded away on save
// while the in-memory totals still include it.
const MoneyScale = 2

// Item is one order line. The line total is derived, never stored independently.
type Item struct {
	// productRef points at the catalog item ordered on this line.
	productRef kernel.UUID
	// quantity is at least 1.
	quantity int
	// unitPrice is zero until an admin prices the line.
	unitPrice decimal.Decimal
}

// NewItem builds an unpriced line (unit price 0).
//
// Parameters:
//   - productRef: catalog item reference, must be a constructed UUID
//   - quantity: ordered amount, at least 1
//
// Returns ValueIsInvalid or ErrUUIDIsNotConstructed when an argument is rejected.
func NewItem(productRef kernel.UUID, quantity int) (Item, error) {
	return NewPricedItem(productRef, quantity, decimal.Zero)
}

// NewPricedItem builds a line with an explicit unit price, as restored from storage.
// The price must be non-negative with at most MoneyScale fraction digits.
//
// Example:
//
//	item, err := order.NewPricedItem(productRef, 100, decimal.RequireFromString("65.50"))
//	if err != nil {
//	    return err
//	}
//	item.LineTotal() // 6550
func NewPricedItem(productRef kernel.UUID, quantity int, unitPrice decimal.Decimal) (Item, error) {
	if err := errors.Join(
		productRef.Validate(),
		validateQuantity(quantity),
		validateUnitPrice(unitPrice),
	); err != nil {
		return Item{}, err
	}
	return Item{productRef: productRef, quantity: quantity, unitPrice: unitPrice}, nil
}

// ProductRef returns the catalog item this line orders.
func (i Item) ProductRef() kernel.UUID {
	return i.productRef
}

// Quantity returns the ordered amount.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the quoted price per unit; zero while the line is unpriced.
func (i Item) UnitPrice() decimal.Decimal {
	return i.unitPrice
}

// LineTotal returns quantity × unit price.
func (i Item) LineTotal() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity)))
}

func (i Item) withUnitPrice(price decimal.Decimal) Item {
	i.unitPrice = price
	return i
}

// PriceUpdate sets the unit price of the line holding ProductRef.
type PriceUpdate struct {
	productRef kernel.UUID
	unitPrice  decimal.Decimal
}

// NewPriceUpdate validates one quoted price.
//
// Parameters:
//   - productRef: the product whose line gets the price
//   - unitPrice: non-negative, at most MoneyScale fraction digits
//
// Returns ValueIsInvalid for a negative or over-precise price, and
// ErrUUIDIsNotConstructed for a zero productRef.
func NewPriceUpdate(productRef kernel.UUID, unitPrice decimal.Decimal) (PriceUpdate, error) {
	if err := errors.Join(productRef.Validate(), validateUnitPrice(unitPrice)); err != nil {
		return PriceUpdate{}, err
	}
	return PriceUpdate{productRef: productRef, unitPrice: unitPrice}, nil
}

// ProductRef returns the product the price applies to.
func (p PriceUpdate) ProductRef() kernel.UUID {
	return p.productRef
}

// UnitPrice returns the quoted price.
func (p PriceUpdate) UnitPrice() decimal.Decimal {
	return p.unitPrice
}

func validateQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is less than 1", quantity))
	}
	return nil
}

func validateUnitPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("unitPrice", fmt.Errorf("%s is negative", price))
	}
	if !price.Equal(price.Truncate(MoneyScale)) {
		return errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%s has more than %d decimal places", price, MoneyScale))
	}
	return nil
}

// validateItems checks a replacement item list: non-empty, every line valid
// (constructed), one line per product.
func validateItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsInvalidErrorWithCause("items", errors.New("at least one item is required"))
	}
	seen := make(map[kernel.UUID]struct{}, len(items))
	for idx, item := range items {
		if err := errors.Join(item.productRef.Validate(), validateQuantity(item.quantity)); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", idx), err)
		}
		if _, dup := seen[item.productRef]; dup {
			return errs.NewValueIsInvalidErrorWithCause(
				"items",
				fmt.Errorf("product %s appears more than once", item.productRef),
			)
		}
		seen[item.productRef] = struct{}{}
	}
	return nil
}
