package repository

import (
	"context"

	"pawparadise/internal/domain/entity"
)

// TestimonialRepository defines persistence operations for testimonials.
type TestimonialRepository interface {
	// List returns every testimonial, newest first.
	List(ctx context.Context) ([]*entity.Testimonial, error)

	Create(ctx context.Context, testimonial *entity.Testimonial) error
	Count(ctx context.Context) (int64, error)
}
