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
	"gorm.io/gorm/clause"
)

type promoCodeRepository struct {
	db *gorm.DB
}

// NewPromoCodeRepository is the constructor for promoCodeRepository.
func NewPromoCodeRepository(db *gorm.DB) repository.PromoCodeRepository {
	return &promoCodeRepository{db: db}
}

func (repo *promoCodeRepository) FindByCode(ctx context.Context, code string) (*entity.PromoCode, error) {
	var promoM model.PromoCodeModel
	if err := repo.db.WithContext(ctx).Where("code = ?", code).First(&promoM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPromoCodeNotFound
		}

		return nil, errors.Wrap(err, "failed to find promo code")
	}

	return toPromoCodeDomain(&promoM), nil
}

func (repo *promoCodeRepository) Upsert(ctx context.Context, promo *entity.PromoCode) error {
	if promo.ID == uuid.Nil {
		promo.ID = uuid.New()
	}
	promo.Code = entity.NormalizePromoCode(promo.Code)

	promoM := &model.PromoCodeModel{
		ID:              promo.ID,
		Code:            promo.Code,
		DiscountPercent: promo.DiscountPercent,
		Active:          promo.Active,
	}
	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{"discount_percent", "active"}),
		}).
		Create(promoM).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert promo code")
	}

	return nil
}
