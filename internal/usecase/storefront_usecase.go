package usecase

import (
	"context"

	"pawparadise/internal/domain/entity"
)

// PromoUsecase validates promo codes.
type PromoUsecase interface {
	// ValidatePromoCode returns the active code or ErrInvalidPromoCode.
	ValidatePromoCode(ctx context.Context, code string) (*entity.PromoCode, error)
}

// ValidatePromoInput is the promo validation request.
type ValidatePromoInput struct {
	Code string `json:"code" validate:"required"`
}

// TestimonialUsecase serves marketing testimonials.
type TestimonialUsecase interface {
	ListTestimonials(ctx context.Context) ([]*entity.Testimonial, error)
}
