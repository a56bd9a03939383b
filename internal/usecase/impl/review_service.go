package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "pawparadise/internal/delivery/context"
	"pawparadise/internal/domain/entity"
	domainerrors "pawparadise/internal/domain/errors"
	"pawparadise/internal/domain/repository"
	"pawparadise/internal/errors"
	"pawparadise/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// reviewService implements the ReviewUsecase interface.
type reviewService struct {
	txManager  repository.TransactionManager
	reviewRepo repository.ReviewRepository
	logger     *slog.Logger
}

// ReviewServiceParams holds dependencies for ReviewService, injected by Fx.
type ReviewServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	ReviewRepo repository.ReviewRepository
	Logger     *slog.Logger
}

// NewReviewService is the constructor for reviewService.
func NewReviewService(params ReviewServiceParams) usecase.ReviewUsecase {
	return &reviewService{
		txManager:  params.TxManager,
		reviewRepo: params.ReviewRepo,
		logger:     params.Logger,
	}
}

func (srv *reviewService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListReviews returns a product's reviews, newest first. Unknown products have none.
func (srv *reviewService) ListReviews(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error) {
	reviews, err := srv.reviewRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}

	return reviews, nil
}

// CreateReview stores the review and recomputes the product rating in the same transaction.
func (srv *reviewService) CreateReview(
	ctx context.Context,
	productID, userID uuid.UUID,
	input *usecase.CreateReviewInput,
) (*entity.Review, error) {
	var review *entity.Review

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()
		reviewRepo := repoFactory.ReviewRepo()

		// The row lock serializes concurrent reviews of one product so each
		// aggregate sees every committed review.
		if _, err := productRepo.FindByIDForUpdate(ctx, productID); err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound
			}

			return errors.Wrap(err, "failed to find product")
		}

		author, err := repoFactory.UserRepo().FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to find review author")
		}

		_, err = reviewRepo.FindByProductAndUser(ctx, productID, userID)
		switch {
		case err == nil:
			return domainerrors.ErrReviewAlreadyExists
		case !errors.Is(err, repository.ErrReviewNotFound):
			return errors.Wrap(err, "failed to check existing review")
		}

		review = &entity.Review{
			ProductID: productID,
			UserID:    userID,
			UserName:  author.Name,
			Rating:    input.Rating,
			Comment:   strings.TrimSpace(input.Comment),
		}
		if err := reviewRepo.Create(ctx, review); err != nil {
			return errors.Wrap(err, "failed to create review")
		}

		summary, err := reviewRepo.Aggregate(ctx, productID)
		if err != nil {
			return errors.Wrap(err, "failed to aggregate ratings")
		}

		if err := productRepo.UpdateRating(ctx, productID, summary.Rounded(), summary.Count); err != nil {
			return errors.Wrap(err, "failed to update product rating")
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create review")
	}

	srv.log(ctx).Info("Review created",
		slog.String("productID", productID.String()),
		slog.String("userID", userID.String()),
		slog.Int("rating", review.Rating),
	)

	return review, nil
}
