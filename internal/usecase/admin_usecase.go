package usecase

import (
	"context"

	"pawparadise/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AdminUsecase defines the back-office operations. Callers must already be
// authorized as admin.
type AdminUsecase interface {
	Dashboard(ctx context.Context) (*DashboardOutput, error)
	ListOrders(ctx context.Context, input *ListOrdersInput) (*OrderPage, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status entity.OrderStatus) (*entity.Order, error)

	CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, input *UpdateProductInput) (*entity.Product, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error

	Inventory(ctx context.Context) ([]*entity.InventoryItem, error)
}

// --- Input DTOs ---

// ListOrdersInput filters the admin order list.
type ListOrdersInput struct {
	Status *entity.OrderStatus
	Page   int
	Limit  int
}

// CreateProductInput defines a new catalog product. Derived fields are not accepted.
type CreateProductInput struct {
	Name          string           `json:"name" validate:"required,max=200"`
	Category      entity.Category  `json:"category" validate:"required,oneof=food toys beds accessories grooming health"`
	PetType       entity.PetType   `json:"petType" validate:"required,oneof=dog cat bird fish reptile all"`
	Brand         string           `json:"brand" validate:"required,max=100"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty"`
	Image         string           `json:"image" validate:"required"`
	Images        []string         `json:"images,omitempty"`
	Description   string           `json:"description" validate:"required"`
	Features      []string         `json:"features,omitempty"`
	Weight        string           `json:"weight" validate:"required,max=50"`
	Dimensions    *string          `json:"dimensions,omitempty"`
	Featured      bool             `json:"featured"`
	StockCount    int              `json:"stockCount" validate:"min=0"`
	SKU           string           `json:"sku" validate:"required,max=50"`
}

// Optional is a PATCH field: Set reports presence, a nil Value with Set means "clear".
type Optional[T any] struct {
	Set   bool
	Value *T
}

// UpdateProductInput is a partial product update. Nil pointers leave the field unchanged.
type UpdateProductInput struct {
	Name          *string
	Category      *entity.Category
	PetType       *entity.PetType
	Brand         *string
	Price         *decimal.Decimal
	OriginalPrice Optional[decimal.Decimal]
	Image         *string
	Images        *[]string
	Description   *string
	Features      *[]string
	Weight        *string
	Dimensions    Optional[string]
	Featured      *bool
	StockCount    *int
	SKU           *string
}

// --- Output DTOs ---

// DashboardStats are the store-wide counters.
type DashboardStats struct {
	TotalProducts int64
	TotalOrders   int64
	TotalUsers    int64
	TotalRevenue  decimal.Decimal
}

// DashboardOutput is the admin landing page payload.
type DashboardOutput struct {
	Stats        DashboardStats
	RecentOrders []*entity.Order
}

// OrderPage is one page of the admin order list.
type OrderPage struct {
	Orders     []*entity.Order
	Total      int64
	Page       int
	TotalPages int
}
