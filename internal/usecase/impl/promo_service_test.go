package impl

import (
	"context"
	"testing"

	"pawparadise/internal/domain/entity"
	domainerrors "pawparadise/internal/domain/errors"
	"pawparadise/internal/domain/repository"
	mockRepo "pawparadise/internal/mocks/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromoService_ValidatePromoCode(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		setup   func(ctx context.Context, repo *mockRepo.MockPromoCodeRepository)
		wantErr bool
	}{
		{
			name: "active code matches case-insensitively",
			code: " welcome10 ",
			setup: func(ctx context.Context, repo *mockRepo.MockPromoCodeRepository) {
				repo.EXPECT().FindByCode(ctx, "WELCOME10").
					Return(&entity.PromoCode{Code: "WELCOME10", DiscountPercent: 10, Active: true}, nil)
			},
		},
		{
			name: "inactive code",
			code: "OLD",
			setup: func(ctx context.Context, repo *mockRepo.MockPromoCodeRepository) {
				repo.EXPECT().FindByCode(ctx, "OLD").Return(&entity.PromoCode{Code: "OLD", Active: false}, nil)
			},
			wantErr: true,
		},
		{
			name: "unknown code",
			code: "MISSING",
			setup: func(ctx context.Context, repo *mockRepo.MockPromoCodeRepository) {
				repo.EXPECT().FindByCode(ctx, "MISSING").Return(nil, repository.ErrPromoCodeNotFound)
			},
			wantErr: true,
		},
		{
			name:    "blank code",
			code:    "   ",
			setup:   func(context.Context, *mockRepo.MockPromoCodeRepository) {},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repo := mockRepo.NewMockPromoCodeRepository(t)
			tt.setup(ctx, repo)
			srv := NewPromoService(repo, newDiscardLogger())

			promo, err := srv.ValidatePromoCode(ctx, tt.code)

			if tt.wantErr {
				assert.ErrorIs(t, err, domainerrors.ErrInvalidPromoCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 10, promo.DiscountPercent)
		})
	}
}
