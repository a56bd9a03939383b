package entity

import (
	"strings"

	"github.com/google/uuid"
)

// PromoCode grants a percentage discount on an order subtotal while active.
type PromoCode struct {
	ID              uuid.UUID
	Code            string
	DiscountPercent int
	Active          bool
}

// NormalizePromoCode trims and uppercases a user-supplied code.
func NormalizePromoCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
