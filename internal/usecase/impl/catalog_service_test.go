package impl

import (
	"context"
	"testing"
	"time"

	"pawparadise/internal/domain/entity"
	domainerrors "pawparadise/internal/domain/errors"
	"pawparadise/internal/domain/repository"
	"pawparadise/internal/domain/service"
	mockRepo "pawparadise/internal/mocks/repository"
	mockSvc "pawparadise/internal/mocks/service"
	"pawparadise/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type catalogServiceFixtures struct {
	service     usecase.CatalogUsecase
	productRepo *mockRepo.MockProductRepository
	cache       *mockSvc.MockCatalogCache
}

func createTestCatalogService(t *testing.T) catalogServiceFixtures {
	productRepo := mockRepo.NewMockProductRepository(t)
	cache := mockSvc.NewMockCatalogCache(t)

	return catalogServiceFixtures{
		service: NewCatalogService(CatalogServiceParams{
			ProductRepo: productRepo,
			Cache:       cache,
			Config:      newTestConfig(),
			Logger:      newDiscardLogger(),
		}),
		productRepo: productRepo,
		cache:       cache,
	}
}

func TestCatalogService_ListProducts_Defaults(t *testing.T) {
	fx := createTestCatalogService(t)
	ctx := context.Background()

	products := []*entity.Product{{ID: uuid.New(), Name: "Chew Toy"}}
	fx.productRepo.EXPECT().
		List(ctx, repository.ProductFilter{Sort: repository.ProductSortNewest, Offset: 0, Limit: 20}).
		Return(products, int64(41), nil)

	page, err := fx.service.ListProducts(ctx, &usecase.ListProductsInput{Sort: "bogus"})

	require.NoError(t, err)
	assert.Equal(t, products, page.Products)
	assert.Equal(t, int64(41), page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 3, page.TotalPages)
}

func TestCatalogService_ListProducts_ClampsLimitAndPassesFilters(t *testing.T) {
	fx := createTestCatalogService(t)
	ctx := context.Background()
	minPrice := decimal.NewFromInt(10)

	fx.productRepo.EXPECT().
		List(ctx, mock.MatchedBy(func(f repository.ProductFilter) bool {
			return f.Limit == 50 &&
				f.Offset == 100 &&
				f.Sort == repository.ProductSortPriceAsc &&
				f.PetType == entity.PetTypeDog &&
				len(f.Categories) == 2 &&
				f.MinPrice.Equal(minPrice) &&
				f.Search == "kibble"
		})).
		Return([]*entity.Product{}, int64(0), nil)

	page, err := fx.service.ListProducts(ctx, &usecase.ListProductsInput{
		Search:     "kibble",
		Categories: []entity.Category{entity.CategoryFood, entity.CategoryHealth},
		PetType:    entity.PetTypeDog,
		MinPrice:   &minPrice,
		Sort:       "price-asc",
		Page:       3,
		Limit:      500,
	})

	require.NoError(t, err)
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, 0, page.TotalPages)
}

func TestCatalogService_ListProducts_InvalidEnums(t *testing.T) {
	fx := createTestCatalogService(t)

	_, err := fx.service.ListProducts(context.Background(), &usecase.ListProductsInput{
		Categories: []entity.Category{"snacks"},
		PetType:    "dragon",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	var validationErr *domainerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Len(t, validationErr.Fields(), 2)
	assert.Equal(t, "category", validationErr.Fields()[0].Field)
	assert.Equal(t, "petType", validationErr.Fields()[1].Field)
}

func TestCatalogService_GetProduct_NotFound(t *testing.T) {
	fx := createTestCatalogService(t)
	ctx := context.Background()

	fx.productRepo.EXPECT().FindByIDOrSlug(ctx, "no-such-slug").Return(nil, repository.ErrProductNotFound)

	_, err := fx.service.GetProduct(ctx, "no-such-slug")

	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestCatalogService_RelatedProducts(t *testing.T) {
	fx := createTestCatalogService(t)
	ctx := context.Background()
	product := &entity.Product{ID: uuid.New(), Category: entity.CategoryToys, PetType: entity.PetTypeCat}
	related := []*entity.Product{{ID: uuid.New()}}

	fx.productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil)
	fx.productRepo.EXPECT().ListRelated(ctx, product, 4).Return(related, nil)

	got, err := fx.service.RelatedProducts(ctx, product.ID)

	require.NoError(t, err)
	assert.Equal(t, related, got)
}

func TestCatalogService_RelatedProducts_UnknownProduct(t *testing.T) {
	fx := createTestCatalogService(t)
	ctx := context.Background()
	id := uuid.New()

	fx.productRepo.EXPECT().FindByID(ctx, id).Return(nil, repository.ErrProductNotFound)

	_, err := fx.service.RelatedProducts(ctx, id)

	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestCatalogService_FeaturedProducts(t *testing.T) {
	fx := createTestCatalogService(t)
	ctx := context.Background()

	fx.productRepo.EXPECT().ListFeatured(ctx, 8).Return([]*entity.Product{}, nil)

	products, err := fx.service.FeaturedProducts(ctx)

	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestCatalogService_Brands_CacheHit(t *testing.T) {
	fx := createTestCatalogService(t)
	ctx := context.Background()

	fx.cache.EXPECT().
		Get(ctx, service.CacheKeyBrands, mock.Anything).
		RunAndReturn(func(_ context.Context, _ string, dest any) error {
			*(dest.(*[]string)) = []string{"Acme", "Paws"}
			return nil
		})

	brands, err := fx.service.Brands(ctx)

	require.NoError(t, err)
	assert.Equal(t, []string{"Acme", "Paws"}, brands)
}

func TestCatalogService_Brands_CacheMissFillsCache(t *testing.T) {
	fx := createTestCatalogService(t)
	ctx := context.Background()

	fx.cache.EXPECT().Get(ctx, service.CacheKeyBrands, mock.Anything).Return(service.ErrCacheMiss)
	fx.productRepo.EXPECT().Brands(ctx).Return([]string{"Acme"}, nil)
	fx.cache.EXPECT().Set(ctx, service.CacheKeyBrands, []string{"Acme"}, 5*time.Minute).Return(nil)

	brands, err := fx.service.Brands(ctx)

	require.NoError(t, err)
	assert.Equal(t, []string{"Acme"}, brands)
}

func TestCatalogService_Categories_CacheFailureIsNotFatal(t *testing.T) {
	fx := createTestCatalogService(t)
	ctx := context.Background()

	fx.cache.EXPECT().Get(ctx, service.CacheKeyCategories, mock.Anything).Return(errors.New("connection refused"))
	fx.productRepo.EXPECT().Categories(ctx).Return([]entity.Category{entity.CategoryFood}, nil)
	fx.cache.EXPECT().Set(ctx, service.CacheKeyCategories, mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	categories, err := fx.service.Categories(ctx)

	require.NoError(t, err)
	assert.Equal(t, []entity.Category{entity.CategoryFood}, categories)
}

func TestCatalogService_PriceRange_EmptyCatalog(t *testing.T) {
	fx := createTestCatalogService(t)
	ctx := context.Background()

	fx.cache.EXPECT().Get(ctx, service.CacheKeyPriceRange, mock.Anything).Return(service.ErrCacheMiss)
	fx.productRepo.EXPECT().PriceRange(ctx).Return(nil, nil)
	fx.cache.EXPECT().Set(ctx, service.CacheKeyPriceRange, mock.Anything, mock.Anything).Return(nil)

	priceRange, err := fx.service.PriceRange(ctx)

	require.NoError(t, err)
	assert.True(t, priceRange.Min.Equal(decimal.Zero))
	assert.True(t, priceRange.Max.Equal(decimal.NewFromInt(100)))
}
