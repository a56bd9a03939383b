package entity

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ShippingPolicy decides the shipping charge for a subtotal.
type ShippingPolicy struct {
	FreeShippingThreshold decimal.Decimal
	FlatShippingCost      decimal.Decimal
}

// Cost returns zero at or above the free-shipping threshold and the flat rate below it.
func (p ShippingPolicy) Cost(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(p.FreeShippingThreshold) {
		return decimal.Zero
	}

	return p.FlatShippingCost
}

// OrderTotals is the money breakdown of an order.
type OrderTotals struct {
	Subtotal     decimal.Decimal
	Discount     decimal.Decimal
	ShippingCost decimal.Decimal
	Total        decimal.Decimal
}

// PriceOrder computes the totals for items. discountPercent of zero means no promo applies.
// The discount is rounded half-up to cents.
func PriceOrder(items []*OrderItem, discountPercent int, policy ShippingPolicy) OrderTotals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}

	discount := decimal.Zero
	if discountPercent > 0 {
		discount = subtotal.Mul(decimal.NewFromInt(int64(discountPercent))).Div(hundred).Round(2)
	}

	shipping := policy.Cost(subtotal)

	return OrderTotals{
		Subtotal:     subtotal,
		Discount:     discount,
		ShippingCost: shipping,
		Total:        subtotal.Sub(discount).Add(shipping),
	}
}
