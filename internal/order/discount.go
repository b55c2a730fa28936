package order

import (
	"fmt"

	"github.com/conneroisu/patterns/internal/errors"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Discount is a percentage taken off the item subtotal. It cannot be changed
// in place; an order swaps in a new Discount instead.
type Discount struct {
	percent decimal.Decimal
}

// NewDiscount returns a discount of percent, which must lie in [0, 100].
func NewDiscount(percent decimal.Decimal) (*Discount, error) {
	if percent.IsNegative() || percent.GreaterThan(hundred) {
		return nil, errors.NewValidationError(errors.ErrCodeValidationFailed,
			fmt.Sprintf("discount percent must be between 0 and 100, got %s", percent.String())).
			WithContext("percent", percent.String())
	}
	return &Discount{percent: percent}, nil
}

// Percent returns the discount rate in percent.
func (d *Discount) Percent() decimal.Decimal {
	return d.percent
}

// Apply returns amount reduced by the discount.
func (d *Discount) Apply(amount decimal.Decimal) decimal.Decimal {
	return amount.Sub(amount.Mul(d.percent).Div(hundred))
}

// Copy returns an independent discount with the same percent.
func (d *Discount) Copy() (*Discount, error) {
	if d == nil {
		return nil, errors.NewValidationError(errors.ErrCodeNilValue, "discount is nil")
	}
	return &Discount{percent: d.percent}, nil
}

func (d *Discount) String() string {
	return d.percent.String() + "%"
}
