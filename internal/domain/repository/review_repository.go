package repository

import (
	"context"
	"errors"

	"pawparadise/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrReviewNotFound is returned when no review matches the lookup.
var ErrReviewNotFound = errors.New("review not found")

// ReviewRepository defines persistence operations for product reviews.
type ReviewRepository interface {
	// ListByProduct returns the product's reviews, newest first.
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error)

	FindByProductAndUser(ctx context.Context, productID, userID uuid.UUID) (*entity.Review, error)
	Create(ctx context.Context, review *entity.Review) error

	// Aggregate computes the mean rating and count over the product's reviews.
	Aggregate(ctx context.Context, productID uuid.UUID) (*entity.RatingSummary, error)
}
