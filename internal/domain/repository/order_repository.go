package repository

import (
	"context"
	"errors"

	"pawparadise/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrOrderNotFound is returned when no order matches the lookup.
var ErrOrderNotFound = errors.New("order not found")

// OrderFilter selects a page of orders for the admin panel.
type OrderFilter struct {
	Status *entity.OrderStatus
	Offset int
	Limit  int
}

// OrderRepository defines persistence operations for orders and their items.
type OrderRepository interface {
	// Create inserts the order and all of its items.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID loads an order with its items.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// ListByUser returns the user's orders with items, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// List returns one page of orders with items and customer, plus the total match count.
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, int64, error)

	// ListRecent returns the newest orders with items and customer.
	ListRecent(ctx context.Context, limit int) ([]*entity.Order, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error
	Count(ctx context.Context) (int64, error)

	// SumTotals adds up the total of every order.
	SumTotals(ctx context.Context) (decimal.Decimal, error)
}
