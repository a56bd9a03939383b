package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"pawparadise/config"
	"pawparadise/internal/domain/repository"
	mockRepo "pawparadise/internal/mocks/repository"

	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.ApplyDefaults()

	return cfg
}

// txRepos are the repositories handed to a transaction callback.
type txRepos struct {
	factory     *mockRepo.MockRepositoryFactory
	users       *mockRepo.MockUserRepository
	products    *mockRepo.MockProductRepository
	orders      *mockRepo.MockOrderRepository
	reviews     *mockRepo.MockReviewRepository
	promoCodes  *mockRepo.MockPromoCodeRepository
	testimonial *mockRepo.MockTestimonialRepository
}

func newTxRepos(t *testing.T) *txRepos {
	repos := &txRepos{
		factory:     mockRepo.NewMockRepositoryFactory(t),
		users:       mockRepo.NewMockUserRepository(t),
		products:    mockRepo.NewMockProductRepository(t),
		orders:      mockRepo.NewMockOrderRepository(t),
		reviews:     mockRepo.NewMockReviewRepository(t),
		promoCodes:  mockRepo.NewMockPromoCodeRepository(t),
		testimonial: mockRepo.NewMockTestimonialRepository(t),
	}

	repos.factory.EXPECT().UserRepo().Return(repos.users).Maybe()
	repos.factory.EXPECT().ProductRepo().Return(repos.products).Maybe()
	repos.factory.EXPECT().OrderRepo().Return(repos.orders).Maybe()
	repos.factory.EXPECT().ReviewRepo().Return(repos.reviews).Maybe()
	repos.factory.EXPECT().PromoCodeRepo().Return(repos.promoCodes).Maybe()
	repos.factory.EXPECT().TestimonialRepo().Return(repos.testimonial).Maybe()

	return repos
}

// expectTx makes txManager run the callback against repos and return its error.
func expectTx(ctx context.Context, txManager *mockRepo.MockTransactionManager, repos *txRepos) {
	txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(repos.factory)
		})
}
