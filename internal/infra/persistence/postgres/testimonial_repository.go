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

type testimonialRepository struct {
	db *gorm.DB
}

// NewTestimonialRepository is the constructor for testimonialRepository.
func NewTestimonialRepository(db *gorm.DB) repository.TestimonialRepository {
	return &testimonialRepository{db: db}
}

func (repo *testimonialRepository) List(ctx context.Context) ([]*entity.Testimonial, error) {
	var models []*model.TestimonialModel
	if err := repo.db.WithContext(ctx).Order("created_at DESC, id ASC").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list testimonials")
	}

	testimonials := make([]*entity.Testimonial, 0, len(models))
	for _, m := range models {
		testimonials = append(testimonials, toTestimonialDomain(m))
	}

	return testimonials, nil
}

func (repo *testimonialRepository) Create(ctx context.Context, testimonial *entity.Testimonial) error {
	if testimonial.ID == uuid.Nil {
		testimonial.ID = uuid.New()
	}

	testimonialM := &model.TestimonialModel{
		ID:          testimonial.ID,
		Name:        testimonial.Name,
		AvatarURL:   testimonial.AvatarURL,
		Comment:     testimonial.Comment,
		Rating:      testimonial.Rating,
		ProductType: testimonial.ProductType,
		CreatedAt:   testimonial.CreatedAt,
	}
	if err := repo.db.WithContext(ctx).Create(testimonialM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create testimonial")
	}

	testimonial.CreatedAt = testimonialM.CreatedAt

	return nil
}

func (repo *testimonialRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.TestimonialModel{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count testimonials")
	}

	return count, nil
}
