package repository

import "context"

// TransactionManager runs checkout, review and admin writes atomically.
type TransactionManager interface {
	// Execute commits when fn returns nil and rolls back otherwise. Every
	// repository handed out by the factory shares the one transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory hands out repositories bound to the current transaction.
type RepositoryFactory interface {
	UserRepo() UserRepository
	ProductRepo() ProductRepository
	OrderRepo() OrderRepository
	ReviewRepo() ReviewRepository
	PromoCodeRepo() PromoCodeRepository
	TestimonialRepo() TestimonialRepository
}
