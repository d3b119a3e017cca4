package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidOrderStatuses_ContainsAll(t *testing.T) {
	expected := []string{
		OrderStatusPending, OrderStatusPaid, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled,
	}
	assert.ElementsMatch(t, expected, ValidOrderStatuses())
}

func TestIsValidOrderStatus(t *testing.T) {
	for _, s := range ValidOrderStatuses() {
		assert.True(t, IsValidOrderStatus(s), "expected %q to be valid", s)
	}
	assert.False(t, IsValidOrderStatus(""))
	assert.False(t, IsValidOrderStatus("PAID"))
	assert.False(t, IsValidOrderStatus("refunded"))
}

func TestOrder_ItemsTotal(t *testing.T) {
	o := Order{Items: []OrderItem{
		{Price: 19.99, Quantity: 2},
		{Price: 5, Quantity: 1},
	}}
	assert.Equal(t, 44.98, o.ItemsTotal())
}

func TestOrder_Apply(t *testing.T) {
	o := Order{Status: OrderStatusPending, ShippingAddress: "1 Main St"}
	paid := OrderStatusPaid
	pid := "pi_123"

	o.Apply(OrderPatch{Status: &paid, PaymentID: &pid})

	assert.Equal(t, OrderStatusPaid, o.Status)
	assert.Equal(t, "pi_123", o.PaymentID)
	assert.Equal(t, "1 Main St", o.ShippingAddress)
	assert.True(t, OrderPatch{}.IsEmpty())
}
