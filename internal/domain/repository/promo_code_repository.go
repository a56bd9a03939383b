package repository

import (
	"context"
	"errors"

	"pawparadise/internal/domain/entity"
)

// ErrPromoCodeNotFound is returned when no promo code matches the lookup.
var ErrPromoCodeNotFound = errors.New("promo code not found")

// PromoCodeRepository defines persistence operations for promo codes.
type PromoCodeRepository interface {
	// FindByCode looks up an already normalized code.
	FindByCode(ctx context.Context, code string) (*entity.PromoCode, error)

	// Upsert creates the code or overwrites its percent and active flag.
	Upsert(ctx context.Context, promo *entity.PromoCode) error
}
