package impl

import (
	"context"

	"pawparadise/internal/domain/entity"
	"pawparadise/internal/domain/repository"
	"pawparadise/internal/errors"
	"pawparadise/internal/usecase"
)

// testimonialService implements the TestimonialUsecase interface.
type testimonialService struct {
	testimonialRepo repository.TestimonialRepository
}

// NewTestimonialService is the constructor for testimonialService.
func NewTestimonialService(testimonialRepo repository.TestimonialRepository) usecase.TestimonialUsecase {
	return &testimonialService{testimonialRepo: testimonialRepo}
}

func (srv *testimonialService) ListTestimonials(ctx context.Context) ([]*entity.Testimonial, error) {
	testimonials, err := srv.testimonialRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list testimonials")
	}

	return testimonials, nil
}
