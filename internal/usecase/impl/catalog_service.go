package impl

import (
	"context"
	"log/slog"
	"time"

	"pawparadise/config"
	deliverycontext "pawparadise/internal/delivery/context"
	"pawparadise/internal/domain/constants"
	"pawparadise/internal/domain/entity"
	domainerrors "pawparadise/internal/domain/errors"
	"pawparadise/internal/domain/repository"
	"pawparadise/internal/domain/service"
	"pawparadise/internal/errors"
	"pawparadise/internal/usecase"
	"pawparadise/internal/util"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

const defaultCatalogCacheTTL = 5 * time.Minute

var productSorts = map[string]repository.ProductSort{
	string(repository.ProductSortNameAsc):   repository.ProductSortNameAsc,
	string(repository.ProductSortNameDesc):  repository.ProductSortNameDesc,
	string(repository.ProductSortPriceAsc):  repository.ProductSortPriceAsc,
	string(repository.ProductSortPriceDesc): repository.ProductSortPriceDesc,
	string(repository.ProductSortRating):    repository.ProductSortRating,
	string(repository.ProductSortNewest):    repository.ProductSortNewest,
}

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	productRepo repository.ProductRepository
	cache       service.CatalogCache
	cacheTTL    time.Duration
	logger      *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	ProductRepo repository.ProductRepository
	Cache       service.CatalogCache
	Config      *config.Config
	Logger      *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	ttl := defaultCatalogCacheTTL
	if params.Config != nil && params.Config.Redis != nil && params.Config.Redis.TTL > 0 {
		ttl = params.Config.Redis.TTL
	}

	return &catalogService{
		productRepo: params.ProductRepo,
		cache:       params.Cache,
		cacheTTL:    ttl,
		logger:      params.Logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListProducts returns one page of the filtered, sorted catalog.
func (srv *catalogService) ListProducts(ctx context.Context, input *usecase.ListProductsInput) (*usecase.ProductPage, error) {
	var fieldErrors []domainerrors.FieldError
	for _, category := range input.Categories {
		if !category.IsValid() {
			fieldErrors = append(fieldErrors, domainerrors.FieldError{
				Field:   "category",
				Message: "Unknown category \"" + string(category) + "\".",
			})
		}
	}
	if input.PetType != "" && !input.PetType.IsValid() {
		fieldErrors = append(fieldErrors, domainerrors.FieldError{
			Field:   "petType",
			Message: "Unknown pet type \"" + string(input.PetType) + "\".",
		})
	}
	if len(fieldErrors) > 0 {
		return nil, domainerrors.NewValidationError(fieldErrors...)
	}

	sort, ok := productSorts[input.Sort]
	if !ok {
		sort = repository.ProductSortNewest
	}

	page, limit := util.NormalizePage(input.Page, input.Limit, constants.DefaultPageSize, constants.MaxPageSize)

	products, total, err := srv.productRepo.List(ctx, repository.ProductFilter{
		Search:     input.Search,
		Categories: input.Categories,
		PetType:    input.PetType,
		Brand:      input.Brand,
		MinPrice:   input.MinPrice,
		MaxPrice:   input.MaxPrice,
		Featured:   input.Featured,
		Sort:       sort,
		Offset:     util.Offset(page, limit),
		Limit:      limit,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return &usecase.ProductPage{
		Products:   products,
		Total:      total,
		Page:       page,
		TotalPages: util.TotalPages(total, limit),
	}, nil
}

// GetProduct looks a product up by id or slug.
func (srv *catalogService) GetProduct(ctx context.Context, idOrSlug string) (*entity.Product, error) {
	product, err := srv.productRepo.FindByIDOrSlug(ctx, idOrSlug)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	return product, nil
}

// RelatedProducts returns products sharing a category or pet type with the given one.
func (srv *catalogService) RelatedProducts(ctx context.Context, productID uuid.UUID) ([]*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	related, err := srv.productRepo.ListRelated(ctx, product, constants.RelatedLimit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list related products")
	}

	return related, nil
}

// FeaturedProducts returns the storefront highlights.
func (srv *catalogService) FeaturedProducts(ctx context.Context) ([]*entity.Product, error) {
	products, err := srv.productRepo.ListFeatured(ctx, constants.FeaturedLimit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list featured products")
	}

	return products, nil
}

func (srv *catalogService) Brands(ctx context.Context) ([]string, error) {
	return cachedLoad(ctx, srv, service.CacheKeyBrands, func() ([]string, error) {
		brands, err := srv.productRepo.Brands(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to list brands")
		}

		return brands, nil
	})
}

func (srv *catalogService) Categories(ctx context.Context) ([]entity.Category, error) {
	return cachedLoad(ctx, srv, service.CacheKeyCategories, func() ([]entity.Category, error) {
		categories, err := srv.productRepo.Categories(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to list categories")
		}

		return categories, nil
	})
}

// PriceRange falls back to a fixed 0 to 100 range for an empty catalog.
func (srv *catalogService) PriceRange(ctx context.Context) (*entity.PriceRange, error) {
	return cachedLoad(ctx, srv, service.CacheKeyPriceRange, func() (*entity.PriceRange, error) {
		priceRange, err := srv.productRepo.PriceRange(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to compute price range")
		}
		if priceRange == nil {
			priceRange = &entity.PriceRange{
				Min: decimal.NewFromInt(constants.EmptyCatalogMinPrice),
				Max: decimal.NewFromInt(constants.EmptyCatalogMaxPrice),
			}
		}

		return priceRange, nil
	})
}

// cachedLoad serves key from the catalog cache, filling it from load on a miss.
// Cache failures are logged and never fail the request.
func cachedLoad[T any](ctx context.Context, srv *catalogService, key string, load func() (T, error)) (T, error) {
	var cached T
	err := srv.cache.Get(ctx, key, &cached)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, service.ErrCacheMiss) {
		srv.log(ctx).Warn("Catalog cache read failed", slog.String("key", key), slog.Any("error", err))
	}

	value, err := load()
	if err != nil {
		var zero T
		return zero, err
	}

	if err := srv.cache.Set(ctx, key, value, srv.cacheTTL); err != nil {
		srv.log(ctx).Warn("Catalog cache write failed", slog.String("key", key), slog.Any("error", err))
	}

	return value, nil
}
