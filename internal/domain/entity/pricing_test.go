package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func defaultPolicy() ShippingPolicy {
	return ShippingPolicy{
		FreeShippingThreshold: dec("49.00"),
		FlatShippingCost:      dec("5.99"),
	}
}

func TestPriceOrder(t *testing.T) {
	tests := []struct {
		name            string
		items           []*OrderItem
		discountPercent int
		want            OrderTotals
	}{
		{
			name: "promo with flat shipping",
			items: []*OrderItem{
				{Quantity: 2, Price: dec("10.00")},
				{Quantity: 1, Price: dec("20.00")},
			},
			discountPercent: 20,
			want: OrderTotals{
				Subtotal:     dec("40.00"),
				Discount:     dec("8.00"),
				ShippingCost: dec("5.99"),
				Total:        dec("37.99"),
			},
		},
		{
			name: "unknown promo leaves discount at zero",
			items: []*OrderItem{
				{Quantity: 2, Price: dec("10.00")},
				{Quantity: 1, Price: dec("20.00")},
			},
			want: OrderTotals{
				Subtotal:     dec("40.00"),
				Discount:     decimal.Zero,
				ShippingCost: dec("5.99"),
				Total:        dec("45.99"),
			},
		},
		{
			name:  "threshold reached exactly ships free",
			items: []*OrderItem{{Quantity: 1, Price: dec("49.00")}},
			want: OrderTotals{
				Subtotal:     dec("49.00"),
				Discount:     decimal.Zero,
				ShippingCost: decimal.Zero,
				Total:        dec("49.00"),
			},
		},
		{
			name:            "shipping is decided before the discount",
			items:           []*OrderItem{{Quantity: 5, Price: dec("10.00")}},
			discountPercent: 50,
			want: OrderTotals{
				Subtotal:     dec("50.00"),
				Discount:     dec("25.00"),
				ShippingCost: decimal.Zero,
				Total:        dec("25.00"),
			},
		},
		{
			name:            "discount rounds half up to cents",
			items:           []*OrderItem{{Quantity: 1, Price: dec("12.25")}},
			discountPercent: 10,
			want: OrderTotals{
				Subtotal:     dec("12.25"),
				Discount:     dec("1.23"),
				ShippingCost: dec("5.99"),
				Total:        dec("17.01"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PriceOrder(tt.items, tt.discountPercent, defaultPolicy())

			assert.True(t, tt.want.Subtotal.Equal(got.Subtotal), "subtotal %s", got.Subtotal)
			assert.True(t, tt.want.Discount.Equal(got.Discount), "discount %s", got.Discount)
			assert.True(t, tt.want.ShippingCost.Equal(got.ShippingCost), "shipping %s", got.ShippingCost)
			assert.True(t, tt.want.Total.Equal(got.Total), "total %s", got.Total)
			assert.True(t, got.Total.Equal(got.Subtotal.Sub(got.Discount).Add(got.ShippingCost)))
		})
	}
}

func TestRatingSummary_Rounded(t *testing.T) {
	assert.Equal(t, 4.3, RatingSummary{Average: 13.0 / 3.0, Count: 3}.Rounded())
	assert.Equal(t, 4.5, RatingSummary{Average: 4.5, Count: 2}.Rounded())
	assert.Equal(t, 0.0, RatingSummary{}.Rounded())
}
