package repository

import (
	"context"
	"errors"

	"pawparadise/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrProductNotFound is returned when no product matches the lookup.
	ErrProductNotFound = errors.New("product not found")

	// ErrInsufficientStock is returned when a conditional stock decrement matches no row.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ProductSort names a catalog ordering.
type ProductSort string

const (
	ProductSortNameAsc   ProductSort = "name-asc"
	ProductSortNameDesc  ProductSort = "name-desc"
	ProductSortPriceAsc  ProductSort = "price-asc"
	ProductSortPriceDesc ProductSort = "price-desc"
	ProductSortRating    ProductSort = "rating"
	ProductSortNewest    ProductSort = "newest"
)

// ProductFilter selects a page of the catalog. Empty fields do not filter.
type ProductFilter struct {
	Search     string
	Categories []entity.Category
	PetType    entity.PetType // Also matches products for every pet.
	Brand      string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Featured   bool
	Sort       ProductSort
	Offset     int
	Limit      int
}

// ProductRepository defines persistence operations for catalog products.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindByIDForUpdate locks the product row until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindByIDOrSlug matches either the primary key or the slug in one query.
	FindByIDOrSlug(ctx context.Context, idOrSlug string) (*entity.Product, error)

	// FindByIDs returns the products that exist among ids, in no particular order.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Product, error)

	// SKUTaken reports whether another product already uses sku.
	SKUTaken(ctx context.Context, sku string, excludeID *uuid.UUID) (bool, error)

	// SlugTaken reports whether another product already uses slug.
	SlugTaken(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error)

	// List returns one page of products matching filter and the total match count.
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, int64, error)

	// ListRelated returns up to limit products sharing a category or pet type with product.
	ListRelated(ctx context.Context, product *entity.Product, limit int) ([]*entity.Product, error)

	// ListFeatured returns up to limit featured products, newest first.
	ListFeatured(ctx context.Context, limit int) ([]*entity.Product, error)

	// ListInventory returns every product's stock summary ordered by name.
	ListInventory(ctx context.Context) ([]*entity.InventoryItem, error)

	Brands(ctx context.Context) ([]string, error)
	Categories(ctx context.Context) ([]entity.Category, error)

	// PriceRange returns nil when the catalog is empty.
	PriceRange(ctx context.Context) (*entity.PriceRange, error)

	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, product *entity.Product) error
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error

	// DecrementStock subtracts quantity only while enough stock remains and
	// recomputes in_stock in the same statement. It returns ErrInsufficientStock
	// when the condition fails.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error

	// UpdateRating stores the derived rating fields.
	UpdateRating(ctx context.Context, id uuid.UUID, rating float64, reviewCount int) error
}
