package usecase

import (
	"context"

	"pawparadise/internal/domain/entity"

	"github.com/google/uuid"
)

// ReviewUsecase defines product review operations.
type ReviewUsecase interface {
	ListReviews(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error)

	// CreateReview inserts the review and refreshes the product rating in one transaction.
	CreateReview(ctx context.Context, productID, userID uuid.UUID, input *CreateReviewInput) (*entity.Review, error)
}

// CreateReviewInput defines a new review.
type CreateReviewInput struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,min=1,max=2000"`
}
