package impl

import (
	"context"
	"testing"

	"pawparadise/internal/domain/entity"
	domainerrors "pawparadise/internal/domain/errors"
	"pawparadise/internal/domain/repository"
	mockRepo "pawparadise/internal/mocks/repository"
	"pawparadise/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type reviewServiceFixtures struct {
	service    usecase.ReviewUsecase
	txManager  *mockRepo.MockTransactionManager
	reviewRepo *mockRepo.MockReviewRepository
}

func createTestReviewService(t *testing.T) reviewServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	reviewRepo := mockRepo.NewMockReviewRepository(t)

	return reviewServiceFixtures{
		service: NewReviewService(ReviewServiceParams{
			TxManager:  txManager,
			ReviewRepo: reviewRepo,
			Logger:     newDiscardLogger(),
		}),
		txManager:  txManager,
		reviewRepo: reviewRepo,
	}
}

func TestReviewService_CreateReview_UpdatesRating(t *testing.T) {
	fx := createTestReviewService(t)
	ctx := context.Background()
	productID, userID := uuid.New(), uuid.New()

	repos := newTxRepos(t)
	expectTx(ctx, fx.txManager, repos)
	repos.products.EXPECT().FindByIDForUpdate(ctx, productID).Return(&entity.Product{ID: productID}, nil)
	repos.users.EXPECT().FindByID(ctx, userID).Return(&entity.User{ID: userID, Name: "Jane"}, nil)
	repos.reviews.EXPECT().FindByProductAndUser(ctx, productID, userID).Return(nil, repository.ErrReviewNotFound)
	repos.reviews.EXPECT().
		Create(ctx, mock.MatchedBy(func(r *entity.Review) bool {
			return r.UserName == "Jane" && r.Rating == 4 && r.Comment == "Great toy"
		})).
		Return(nil)
	repos.reviews.EXPECT().Aggregate(ctx, productID).Return(&entity.RatingSummary{Average: 4.333333, Count: 3}, nil)
	repos.products.EXPECT().UpdateRating(ctx, productID, 4.3, 3).Return(nil)

	review, err := fx.service.CreateReview(ctx, productID, userID, &usecase.CreateReviewInput{Rating: 4, Comment: "  Great toy "})

	require.NoError(t, err)
	assert.Equal(t, "Jane", review.UserName)
	assert.Equal(t, productID, review.ProductID)
}

func TestReviewService_CreateReview_Errors(t *testing.T) {
	productID, userID := uuid.New(), uuid.New()

	tests := []struct {
		name    string
		setup   func(ctx context.Context, repos *txRepos)
		wantErr error
	}{
		{
			name: "unknown product",
			setup: func(ctx context.Context, repos *txRepos) {
				repos.products.EXPECT().FindByIDForUpdate(ctx, productID).Return(nil, repository.ErrProductNotFound)
			},
			wantErr: domainerrors.ErrProductNotFound,
		},
		{
			name: "unknown user",
			setup: func(ctx context.Context, repos *txRepos) {
				repos.products.EXPECT().FindByIDForUpdate(ctx, productID).Return(&entity.Product{ID: productID}, nil)
				repos.users.EXPECT().FindByID(ctx, userID).Return(nil, repository.ErrUserNotFound)
			},
			wantErr: domainerrors.ErrUserNotFound,
		},
		{
			name: "already reviewed",
			setup: func(ctx context.Context, repos *txRepos) {
				repos.products.EXPECT().FindByIDForUpdate(ctx, productID).Return(&entity.Product{ID: productID}, nil)
				repos.users.EXPECT().FindByID(ctx, userID).Return(&entity.User{ID: userID}, nil)
				repos.reviews.EXPECT().FindByProductAndUser(ctx, productID, userID).Return(&entity.Review{}, nil)
			},
			wantErr: domainerrors.ErrReviewAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestReviewService(t)
			ctx := context.Background()
			repos := newTxRepos(t)
			expectTx(ctx, fx.txManager, repos)
			tt.setup(ctx, repos)

			_, err := fx.service.CreateReview(ctx, productID, userID, &usecase.CreateReviewInput{Rating: 5, Comment: "ok"})

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestReviewService_ListReviews(t *testing.T) {
	fx := createTestReviewService(t)
	ctx := context.Background()
	productID := uuid.New()

	fx.reviewRepo.EXPECT().ListByProduct(ctx, productID).Return([]*entity.Review{}, nil)

	reviews, err := fx.service.ListReviews(ctx, productID)

	require.NoError(t, err)
	assert.Empty(t, reviews)
}
