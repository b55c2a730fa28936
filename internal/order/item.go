package order

import (
	"fmt"

	"github.com/conneroisu/patterns/internal/errors"
	"github.com/shopspring/decimal"
)

// LineItem is one product line of an order.
type LineItem struct {
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// NewLineItem returns a line item, rejecting a negative quantity.
func NewLineItem(name string, unitPrice decimal.Decimal, quantity int) (*LineItem, error) {
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}
	return &LineItem{Name: name, UnitPrice: unitPrice, Quantity: quantity}, nil
}

// SetQuantity changes the quantity of the line.
func (li *LineItem) SetQuantity(quantity int) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}
	li.Quantity = quantity
	return nil
}

// Subtotal is unit price times quantity.
func (li *LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Copy returns an independent line item with the same fields.
func (li *LineItem) Copy() (*LineItem, error) {
	if li == nil {
		return nil, errors.NewValidationError(errors.ErrCodeNilValue, "line item is nil")
	}
	if err := validateQuantity(li.Quantity); err != nil {
		return nil, err
	}
	c := *li
	return &c, nil
}

func (li *LineItem) String() string {
	return fmt.Sprintf("%s x%d $%s", li.Name, li.Quantity, li.UnitPrice.String())
}

func validateQuantity(quantity int) error {
	if quantity < 0 {
		return errors.NewValidationError(errors.ErrCodeInvalidQuantity,
			fmt.Sprintf("quantity must not be negative, got %d", quantity)).
			WithContext("quantity", quantity)
	}
	return nil
}
