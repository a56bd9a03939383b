package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	allowed := map[OrderStatus][]OrderStatus{
		OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
		OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
		OrderStatusShipped:    {OrderStatusDelivered},
	}
	all := []OrderStatus{
		OrderStatusPending,
		OrderStatusProcessing,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled,
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, next := range allowed[from] {
				if next == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}

	assert.True(t, OrderStatusDelivered.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.False(t, OrderStatusShipped.IsTerminal())
}

func TestOrder_ItemCount(t *testing.T) {
	order := &Order{Items: []*OrderItem{{Quantity: 2}, {Quantity: 3}}}
	assert.Equal(t, 5, order.ItemCount())
}

func TestProduct_SetStockCount(t *testing.T) {
	p := &Product{}
	p.SetStockCount(3)
	assert.True(t, p.InStock)
	assert.True(t, p.HasStock(3))
	assert.False(t, p.HasStock(4))

	p.SetStockCount(0)
	assert.False(t, p.InStock)
	assert.False(t, p.HasStock(1))
}

func TestNormalizePromoCode(t *testing.T) {
	assert.Equal(t, "SAVE20", NormalizePromoCode("  save20 "))
}

func TestDefaultAvatarURL(t *testing.T) {
	assert.Equal(t,
		"https://ui-avatars.com/api/?name=Jane%20Doe&background=6366f1&color=fff",
		DefaultAvatarURL("Jane Doe"),
	)
}
