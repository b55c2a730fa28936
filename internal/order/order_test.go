package order

import (
	"bytes"
	"testing"

	"github.com/conneroisu/patterns/internal/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSampleOrder builds the demo order: one phone, 15% off, 30 delivery.
func newSampleOrder(t *testing.T) *Order {
	t.Helper()

	item, err := NewLineItem("Phone", decimal.NewFromInt(500), 1)
	require.NoError(t, err)
	discount, err := NewDiscount(decimal.NewFromInt(15))
	require.NoError(t, err)

	o := New()
	o.AddItem(item)
	o.SetDiscount(discount)
	o.SetDeliveryCost(decimal.NewFromInt(30))
	o.SetPaymentMethod("Card")
	return o
}

func TestCloneCopiesFields(t *testing.T) {
	original := newSampleOrder(t)

	clone, err := original.Clone()
	require.NoError(t, err)

	assert.NotEqual(t, original.ID(), clone.ID())
	require.Len(t, clone.Items(), 1)
	assert.Equal(t, *original.Items()[0], *clone.Items()[0])
	assert.NotSame(t, original.Items()[0], clone.Items()[0])
	assert.True(t, original.Discount().Percent().Equal(clone.Discount().Percent()))
	assert.NotSame(t, original.Discount(), clone.Discount())
	assert.True(t, original.DeliveryCost().Equal(clone.DeliveryCost()))
	assert.Equal(t, original.PaymentMethod(), clone.PaymentMethod())
	assert.True(t, original.Total().Equal(clone.Total()))
}

func TestCloneQuantityIndependence(t *testing.T) {
	original := newSampleOrder(t)
	clone, err := original.Clone()
	require.NoError(t, err)

	require.NoError(t, clone.Items()[0].SetQuantity(5))
	assert.Equal(t, 1, original.Items()[0].Quantity)
	assert.Equal(t, 5, clone.Items()[0].Quantity)

	require.NoError(t, original.Items()[0].SetQuantity(3))
	assert.Equal(t, 5, clone.Items()[0].Quantity)
}

func TestCloneDiscountIndependence(t *testing.T) {
	original := newSampleOrder(t)
	clone, err := original.Clone()
	require.NoError(t, err)

	bigger, err := NewDiscount(decimal.NewFromInt(40))
	require.NoError(t, err)
	clone.SetDiscount(bigger)
	assert.True(t, original.Discount().Percent().Equal(decimal.NewFromInt(15)))

	smaller, err := NewDiscount(decimal.NewFromInt(5))
	require.NoError(t, err)
	original.SetDiscount(smaller)
	assert.True(t, clone.Discount().Percent().Equal(decimal.NewFromInt(40)))
}

func TestCloneItemListIndependence(t *testing.T) {
	original := newSampleOrder(t)
	clone, err := original.Clone()
	require.NoError(t, err)

	extra, err := NewLineItem("Case", decimal.RequireFromString("19.99"), 2)
	require.NoError(t, err)
	clone.AddItem(extra)
	assert.Len(t, original.Items(), 1)
	assert.Len(t, clone.Items(), 2)

	require.NoError(t, original.RemoveItem(0))
	assert.Empty(t, original.Items())
	assert.Len(t, clone.Items(), 2)
}

func TestCloneNilItemFails(t *testing.T) {
	o := newSampleOrder(t)
	o.AddItem(nil)

	clone, err := o.Clone()
	assert.Nil(t, clone)
	require.Error(t, err)
	assert.True(t, errors.IsCloneError(err))
	assert.True(t, errors.IsValidationError(err), "cause must stay reachable")
	assert.Contains(t, err.Error(), "line item 1")
}

func TestCloneWithoutDiscount(t *testing.T) {
	o := newSampleOrder(t)
	o.SetDiscount(nil)

	clone, err := o.Clone()
	require.NoError(t, err)
	assert.Nil(t, clone.Discount())
}

func TestNegativeQuantityRejected(t *testing.T) {
	_, err := NewLineItem("Phone", decimal.NewFromInt(1), -1)
	assert.True(t, errors.IsValidationError(err))

	item, err := NewLineItem("Phone", decimal.NewFromInt(1), 0)
	require.NoError(t, err)
	assert.True(t, errors.IsValidationError(item.SetQuantity(-2)))
	assert.Equal(t, 0, item.Quantity)
}

func TestDiscountBounds(t *testing.T) {
	_, err := NewDiscount(decimal.NewFromInt(-1))
	assert.Error(t, err)
	_, err = NewDiscount(decimal.NewFromInt(101))
	assert.Error(t, err)

	d, err := NewDiscount(decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.True(t, d.Apply(decimal.NewFromInt(80)).IsZero())
}

func TestTotals(t *testing.T) {
	o := newSampleOrder(t)

	assert.True(t, o.Subtotal().Equal(decimal.NewFromInt(500)))
	// 500 - 15% = 425, + 30 delivery
	assert.True(t, o.Total().Equal(decimal.NewFromInt(455)), o.Total().String())
}

func TestRemoveItemOutOfRange(t *testing.T) {
	o := New()
	err := o.RemoveItem(0)
	assert.True(t, errors.IsNotFound(err))
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newSampleOrder(t).Render(&buf))

	assert.Equal(t, "Phone x1 $500\n"+
		"Delivery: 30\n"+
		"Discount: 15%\n"+
		"Payment: Card\n"+
		"Total: 455.00\n", buf.String())
}

func TestCopyNilReceivers(t *testing.T) {
	var item *LineItem
	_, err := item.Copy()
	assert.Error(t, err)

	var d *Discount
	_, err = d.Copy()
	assert.Error(t, err)
}
