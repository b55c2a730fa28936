// Package order models a customer order that can serve as a template for
// new orders.
//
// Clone produces a deep copy: line items and the discount are copied into
// new objects, so editing the clone never shows up on the original and vice
// versa. Scalar fields (delivery cost, payment method) are copied by value.
package order

import (
	"fmt"
	"io"

	"github.com/conneroisu/patterns/internal/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order owns its line items and discount exclusively.
type Order struct {
	id            uuid.UUID
	items         []*LineItem
	discount      *Discount
	deliveryCost  decimal.Decimal
	paymentMethod string
}

// New returns an empty order with a fresh ID.
func New() *Order {
	return &Order{
		id:    uuid.New(),
		items: make([]*LineItem, 0),
	}
}

// ID identifies the order. A clone gets its own ID.
func (o *Order) ID() uuid.UUID {
	return o.id
}

// AddItem appends item. The order takes ownership of it.
func (o *Order) AddItem(item *LineItem) {
	o.items = append(o.items, item)
}

// RemoveItem drops the item at index i.
func (o *Order) RemoveItem(i int) error {
	if i < 0 || i >= len(o.items) {
		return errors.NewNotFoundError(errors.ErrCodeItemNotFound,
			fmt.Sprintf("no line item at index %d", i)).WithContext("items", len(o.items))
	}
	o.items = append(o.items[:i:i], o.items[i+1:]...)
	return nil
}

// Items returns the order's line items. The slice is a copy but the items are
// the order's own, so SetQuantity on them edits this order.
func (o *Order) Items() []*LineItem {
	out := make([]*LineItem, len(o.items))
	copy(out, o.items)
	return out
}

// SetDiscount replaces the discount. nil removes it.
func (o *Order) SetDiscount(d *Discount) {
	o.discount = d
}

// Discount returns the current discount, or nil.
func (o *Order) Discount() *Discount {
	return o.discount
}

// SetDeliveryCost sets the delivery cost.
func (o *Order) SetDeliveryCost(cost decimal.Decimal) {
	o.deliveryCost = cost
}

// DeliveryCost returns the delivery cost.
func (o *Order) DeliveryCost() decimal.Decimal {
	return o.deliveryCost
}

// SetPaymentMethod sets the payment method.
func (o *Order) SetPaymentMethod(method string) {
	o.paymentMethod = method
}

// PaymentMethod returns the payment method.
func (o *Order) PaymentMethod() string {
	return o.paymentMethod
}

// Subtotal sums the line items before discount and delivery.
func (o *Order) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range o.items {
		if item != nil {
			sum = sum.Add(item.Subtotal())
		}
	}
	return sum
}

// Total is the discounted subtotal plus delivery.
func (o *Order) Total() decimal.Decimal {
	sub := o.Subtotal()
	if o.discount != nil {
		sub = o.discount.Apply(sub)
	}
	return sub.Add(o.deliveryCost)
}

// Clone returns a deep copy of the order under a new ID. Every line item and
// the discount are copied; a failure copying any of them aborts the clone
// with a clone error wrapping the cause.
func (o *Order) Clone() (*Order, error) {
	items := make([]*LineItem, 0, len(o.items))
	for i, item := range o.items {
		c, err := item.Copy()
		if err != nil {
			return nil, errors.NewCloneError(fmt.Sprintf("copying line item %d", i), err).
				WithComponent("order").
				WithContext("order_id", o.id.String())
		}
		items = append(items, c)
	}

	var discount *Discount
	if o.discount != nil {
		d, err := o.discount.Copy()
		if err != nil {
			return nil, errors.NewCloneError("copying discount", err).
				WithComponent("order").
				WithContext("order_id", o.id.String())
		}
		discount = d
	}

	return &Order{
		id:            uuid.New(),
		items:         items,
		discount:      discount,
		deliveryCost:  o.deliveryCost,
		paymentMethod: o.paymentMethod,
	}, nil
}

// Render writes the items, delivery, discount, payment method and total.
func (o *Order) Render(w io.Writer) error {
	for _, item := range o.items {
		if item == nil {
			continue
		}
		if _, err := fmt.Fprintln(w, item.String()); err != nil {
			return err
		}
	}

	discount := "none"
	if o.discount != nil {
		discount = o.discount.String()
	}

	_, err := fmt.Fprintf(w, "Delivery: %s\nDiscount: %s\nPayment: %s\nTotal: %s\n",
		o.deliveryCost.String(), discount, o.paymentMethod, o.Total().StringFixed(2))
	return err
}
