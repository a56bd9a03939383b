package usecase

import (
	"context"

	"pawparadise/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CatalogUsecase defines read-only catalog queries.
type CatalogUsecase interface {
	ListProducts(ctx context.Context, input *ListProductsInput) (*ProductPage, error)

	// GetProduct looks a product up by id or slug.
	GetProduct(ctx context.Context, idOrSlug string) (*entity.Product, error)

	RelatedProducts(ctx context.Context, productID uuid.UUID) ([]*entity.Product, error)
	FeaturedProducts(ctx context.Context) ([]*entity.Product, error)
	Brands(ctx context.Context) ([]string, error)
	Categories(ctx context.Context) ([]entity.Category, error)
	PriceRange(ctx context.Context) (*entity.PriceRange, error)
}

// ListProductsInput holds the catalog query parameters. Zero values mean "no filter".
type ListProductsInput struct {
	Search     string
	Categories []entity.Category
	PetType    entity.PetType
	Brand      string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Featured   bool
	Sort       string
	Page       int
	Limit      int
}

// ProductPage is one page of catalog results.
type ProductPage struct {
	Products   []*entity.Product
	Total      int64
	Page       int
	TotalPages int
}
