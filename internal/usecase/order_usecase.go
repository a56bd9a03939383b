package usecase

import (
	"context"

	"pawparadise/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderUsecase defines checkout and order retrieval for customers.
type OrderUsecase interface {
	// PlaceOrder prices the cart, applies an optional promo code and writes the
	// order while decrementing stock, all in one transaction.
	PlaceOrder(ctx context.Context, userID uuid.UUID, input *PlaceOrderInput) (*entity.Order, error)

	ListMyOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// GetOrder is allowed for the owner and for admins.
	GetOrder(ctx context.Context, principal *entity.Principal, orderID uuid.UUID) (*entity.Order, error)

	// OrderQR renders a PNG QR code for an order the principal may read.
	OrderQR(ctx context.Context, principal *entity.Principal, orderID uuid.UUID) ([]byte, error)
}

// MaxLineQuantity caps the units of one product in a single order, after
// repeated lines for that product are merged.
const MaxLineQuantity = 1000

// OrderItemInput is one cart line.
type OrderItemInput struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1,max=1000"`
}

// ShippingAddressInput is the delivery address captured at checkout.
type ShippingAddressInput struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required"`
	Address   string `json:"address" validate:"required"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state" validate:"required"`
	ZipCode   string `json:"zipCode" validate:"required"`
}

// PlaceOrderInput defines the checkout request.
type PlaceOrderInput struct {
	Items           []OrderItemInput     `json:"items" validate:"required,min=1,dive"`
	ShippingAddress ShippingAddressInput `json:"shippingAddress" validate:"required"`
	PromoCode       *string              `json:"promoCode,omitempty"`
}
