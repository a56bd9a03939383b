package impl

import (
	"context"
	"log/slog"

	"pawparadise/internal/domain/entity"
	domainerrors "pawparadise/internal/domain/errors"
	"pawparadise/internal/domain/repository"
	"pawparadise/internal/errors"
	"pawparadise/internal/usecase"
)

// promoService implements the PromoUsecase interface.
type promoService struct {
	promoRepo repository.PromoCodeRepository
	logger    *slog.Logger
}

// NewPromoService is the constructor for promoService.
func NewPromoService(promoRepo repository.PromoCodeRepository, logger *slog.Logger) usecase.PromoUsecase {
	return &promoService{
		promoRepo: promoRepo,
		logger:    logger,
	}
}

// ValidatePromoCode returns the active promo code matching code, case-insensitively.
func (srv *promoService) ValidatePromoCode(ctx context.Context, code string) (*entity.PromoCode, error) {
	normalized := entity.NormalizePromoCode(code)
	if normalized == "" {
		return nil, domainerrors.ErrInvalidPromoCode
	}

	promo, err := srv.promoRepo.FindByCode(ctx, normalized)
	if err != nil {
		if errors.Is(err, repository.ErrPromoCodeNotFound) {
			return nil, domainerrors.ErrInvalidPromoCode
		}

		return nil, errors.Wrap(err, "failed to find promo code")
	}

	if !promo.Active {
		srv.logger.Debug("Inactive promo code submitted", slog.String("code", normalized))

		return nil, domainerrors.ErrInvalidPromoCode
	}

	return promo, nil
}
