package postgres

import (
	"context"

	"pawparadise/internal/domain/entity"
	domainerrors "pawparadise/internal/domain/errors"
	"pawparadise/internal/domain/repository"
	"pawparadise/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository is the constructor for reviewRepository.
func NewReviewRepository(db *gorm.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (repo *reviewRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error) {
	var models []*model.ReviewModel
	err := repo.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}

	reviews := make([]*entity.Review, 0, len(models))
	for _, m := range models {
		reviews = append(reviews, toReviewDomain(m))
	}

	return reviews, nil
}

func (repo *reviewRepository) FindByProductAndUser(ctx context.Context, productID, userID uuid.UUID) (*entity.Review, error) {
	var reviewM model.ReviewModel
	err := repo.db.WithContext(ctx).
		Where("product_id = ? AND user_id = ?", productID, userID).
		First(&reviewM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrReviewNotFound
		}

		return nil, errors.Wrap(err, "failed to find review")
	}

	return toReviewDomain(&reviewM), nil
}

// Create inserts the review. A concurrent duplicate loses on the unique index.
func (repo *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}

	reviewM := &model.ReviewModel{
		ID:        review.ID,
		ProductID: review.ProductID,
		UserID:    review.UserID,
		UserName:  review.UserName,
		Rating:    review.Rating,
		Comment:   review.Comment,
	}
	if err := repo.db.WithContext(ctx).Create(reviewM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrReviewAlreadyExists
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrProductNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create review")
	}

	review.CreatedAt = reviewM.CreatedAt

	return nil
}

func (repo *reviewRepository) Aggregate(ctx context.Context, productID uuid.UUID) (*entity.RatingSummary, error) {
	var row struct {
		Average float64
		Count   int
	}
	err := repo.db.WithContext(ctx).
		Model(&model.ReviewModel{}).
		Select("COALESCE(AVG(rating), 0)::float8 AS average, COUNT(*) AS count").
		Where("product_id = ?", productID).
		Scan(&row).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to aggregate reviews")
	}

	return &entity.RatingSummary{Average: row.Average, Count: row.Count}, nil
}
