package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestItemSubtotal(t *testing.T) {
	unitPrice := decimal.RequireFromString("12.50")

	subtotal := ItemSubtotal(unitPrice, 3)

	assert.True(t, subtotal.Equal(decimal.RequireFromString("37.50")),
		"expected 37.50, got %s", subtotal)
}

func TestItemSubtotalIgnoresLaterPriceChanges(t *testing.T) {
	item := OrderItem{
		Quantity:  3,
		UnitPrice: decimal.RequireFromString("12.50"),
	}
	item.Subtotal = ItemSubtotal(item.UnitPrice, item.Quantity)

	// the referenced product gets a new price afterwards; the snapshot on
	// the item is untouched
	product := Product{Price: decimal.RequireFromString("99.90")}
	_ = product

	assert.Equal(t, "37.5", item.Subtotal.String())
}

func TestOrderTotal(t *testing.T) {
	items := []OrderItem{
		{Subtotal: decimal.RequireFromString("37.50")},
		{Subtotal: decimal.RequireFromString("10.00")},
	}

	assert.True(t, OrderTotal(items).Equal(decimal.RequireFromString("47.50")))
	assert.True(t, OrderTotal(nil).Equal(decimal.Zero))
}

func TestOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		ok       bool
	}{
		{OrderPending, OrderConfirmed, true},
		{OrderPending, OrderCancelled, true},
		{OrderPending, OrderDelivered, false},
		{OrderConfirmed, OrderDelivered, true},
		{OrderConfirmed, OrderCancelled, true},
		{OrderDelivered, OrderCancelled, false},
		{OrderCancelled, OrderConfirmed, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.ok, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}
