package postgres

import (
	"context"
	"os"
	"sync"
	"testing"

	"pawparadise/internal/domain/entity"
	domainerrors "pawparadise/internal/domain/errors"
	"pawparadise/internal/domain/repository"
	"pawparadise/internal/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testDSNEnv = "PAWPARADISE_TEST_POSTGRES_DSN"

// openTestDB connects to a disposable database. The tests are skipped unless
// PAWPARADISE_TEST_POSTGRES_DSN is set.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv(testDSNEnv)
	if dsn == "" {
		t.Skipf("%s not set", testDSNEnv)
	}

	db, err := gorm.Open(pgdriver.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(context.Background(), db))

	t.Cleanup(func() {
		db.Exec("TRUNCATE order_items, orders, reviews, products, users, promo_codes, testimonials CASCADE")
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return db
}

func seedUser(t *testing.T, db *gorm.DB) *entity.User {
	t.Helper()

	user := &entity.User{
		Name:         "Ada Lovelace",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "hash",
		Role:         entity.RoleCustomer,
		AvatarURL:    entity.DefaultAvatarURL("Ada Lovelace"),
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))

	return user
}

func seedProduct(t *testing.T, db *gorm.DB, stock int) *entity.Product {
	t.Helper()

	suffix := uuid.NewString()[:8]
	product := &entity.Product{
		Name:        "Chew Rope " + suffix,
		Slug:        "chew-rope-" + suffix,
		Category:    entity.CategoryToys,
		PetType:     entity.PetTypeDog,
		Brand:       "Tuggo",
		Price:       decimal.RequireFromString("12.99"),
		Image:       "https://example.com/rope.jpg",
		Description: "Durable rope toy.",
		Weight:      "200g",
		SKU:         "SKU-" + suffix,
	}
	product.SetStockCount(stock)
	require.NoError(t, NewProductRepository(db).Create(context.Background(), product))

	return product
}

func TestProductRepository_DecrementStock(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewProductRepository(db)
	product := seedProduct(t, db, 3)

	require.NoError(t, repo.DecrementStock(ctx, product.ID, 2))

	err := repo.DecrementStock(ctx, product.ID, 2)
	assert.ErrorIs(t, err, repository.ErrInsufficientStock)

	require.NoError(t, repo.DecrementStock(ctx, product.ID, 1))

	got, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.StockCount)
	assert.False(t, got.InStock)
}

func TestProductRepository_ConcurrentLastUnit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	product := seedProduct(t, db, 1)
	tm := NewTransactionManager(db)

	const buyers = 5
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for range buyers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
				return f.ProductRepo().DecrementStock(ctx, product.ID, 1)
			})
			if err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, success)

	got, err := NewProductRepository(db).FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.StockCount)
}

func TestProductRepository_FindByIDOrSlug(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewProductRepository(db)
	product := seedProduct(t, db, 5)

	byID, err := repo.FindByIDOrSlug(ctx, product.ID.String())
	require.NoError(t, err)
	assert.Equal(t, product.ID, byID.ID)

	bySlug, err := repo.FindByIDOrSlug(ctx, product.Slug)
	require.NoError(t, err)
	assert.Equal(t, product.ID, bySlug.ID)

	_, err = repo.FindByIDOrSlug(ctx, "no-such-product")
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}

func TestProductRepository_DuplicateSKU(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	product := seedProduct(t, db, 1)

	clone := *product
	clone.ID = uuid.Nil
	clone.Slug = product.Slug + "-copy"
	err := NewProductRepository(db).Create(ctx, &clone)
	assert.ErrorIs(t, err, domainerrors.ErrDuplicateSKU)
}

func TestProductRepository_DeleteWithOrders(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	user := seedUser(t, db)
	product := seedProduct(t, db, 5)

	order := &entity.Order{
		UserID:   user.ID,
		Status:   entity.OrderStatusPending,
		Subtotal: product.Price,
		Total:    product.Price,
		Items: []*entity.OrderItem{
			{ProductID: product.ID, ProductName: product.Name, Quantity: 1, Price: product.Price},
		},
	}
	require.NoError(t, NewOrderRepository(db).Create(ctx, order))

	err := NewProductRepository(db).Delete(ctx, product.ID)
	assert.ErrorIs(t, err, domainerrors.ErrProductInUse)
}

func TestOrderRepository_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewOrderRepository(db)
	user := seedUser(t, db)
	product := seedProduct(t, db, 5)
	code := "SAVE10"

	order := &entity.Order{
		UserID:       user.ID,
		Status:       entity.OrderStatusPending,
		Subtotal:     decimal.RequireFromString("25.98"),
		Discount:     decimal.RequireFromString("2.60"),
		ShippingCost: decimal.RequireFromString("5.99"),
		Total:        decimal.RequireFromString("29.37"),
		PromoCode:    &code,
		ShippingAddress: entity.ShippingAddress{
			FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com",
			Address: "1 Main St", City: "London", State: "LDN", ZipCode: "00001",
		},
		Items: []*entity.OrderItem{
			{ProductID: product.ID, ProductName: product.Name, Quantity: 2, Price: product.Price},
		},
	}
	require.NoError(t, repo.Create(ctx, order))

	got, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, order.Total.Equal(got.Total))
	assert.Equal(t, "London", got.ShippingAddress.City)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.Items[0].Quantity)

	require.NoError(t, repo.UpdateStatus(ctx, order.ID, entity.OrderStatusShipped))
	assert.ErrorIs(t, repo.UpdateStatus(ctx, uuid.New(), entity.OrderStatusShipped), repository.ErrOrderNotFound)

	status := entity.OrderStatusShipped
	page, total, err := repo.List(ctx, repository.OrderFilter{Status: &status, Limit: 20})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, page, 1)
	require.NotNil(t, page[0].Customer)
	assert.Equal(t, user.Email, page[0].Customer.Email)

	sum, err := repo.SumTotals(ctx)
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.RequireFromString("29.37")))
}

func TestReviewRepository_UniquePerUser(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewReviewRepository(db)
	user := seedUser(t, db)
	product := seedProduct(t, db, 1)

	first := &entity.Review{ProductID: product.ID, UserID: user.ID, UserName: user.Name, Rating: 4, Comment: "Great"}
	require.NoError(t, repo.Create(ctx, first))

	second := &entity.Review{ProductID: product.ID, UserID: user.ID, UserName: user.Name, Rating: 5, Comment: "Again"}
	err := repo.Create(ctx, second)
	assert.True(t, errors.Is(err, domainerrors.ErrReviewAlreadyExists))

	summary, err := repo.Aggregate(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Count)
	assert.InDelta(t, 4.0, summary.Average, 0.001)
}

func TestReviewRepository_ConcurrentRatingUpdates(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	product := seedProduct(t, db, 1)
	tm := NewTransactionManager(db)

	const reviewers = 6
	users := make([]*entity.User, reviewers)
	for i := range users {
		users[i] = seedUser(t, db)
	}

	var wg sync.WaitGroup
	errs := make([]error, reviewers)
	for i, user := range users {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = tm.Execute(ctx, func(f repository.RepositoryFactory) error {
				if _, err := f.ProductRepo().FindByIDForUpdate(ctx, product.ID); err != nil {
					return err
				}
				review := &entity.Review{ProductID: product.ID, UserID: user.ID, UserName: user.Name, Rating: 1 + i%5, Comment: "ok"}
				if err := f.ReviewRepo().Create(ctx, review); err != nil {
					return err
				}
				summary, err := f.ReviewRepo().Aggregate(ctx, product.ID)
				if err != nil {
					return err
				}

				return f.ProductRepo().UpdateRating(ctx, product.ID, summary.Rounded(), summary.Count)
			})
		}()
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	got, err := NewProductRepository(db).FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, reviewers, got.ReviewCount)
	assert.InDelta(t, 2.7, got.Rating, 0.001)
}

func TestPromoCodeRepository_Upsert(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewPromoCodeRepository(db)

	require.NoError(t, repo.Upsert(ctx, &entity.PromoCode{Code: "welcome20", DiscountPercent: 20, Active: true}))
	require.NoError(t, repo.Upsert(ctx, &entity.PromoCode{Code: "WELCOME20", DiscountPercent: 25, Active: false}))

	got, err := repo.FindByCode(ctx, "WELCOME20")
	require.NoError(t, err)
	assert.Equal(t, 25, got.DiscountPercent)
	assert.False(t, got.Active)

	_, err = repo.FindByCode(ctx, "NOPE")
	assert.ErrorIs(t, err, repository.ErrPromoCodeNotFound)
}
