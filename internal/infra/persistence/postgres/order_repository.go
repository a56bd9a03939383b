package postgres

import (
	"context"
	"time"

	"pawparadise/internal/domain/entity"
	domainerrors "pawparadise/internal/domain/errors"
	"pawparadise/internal/domain/repository"
	"pawparadise/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// Create inserts the order row and its items in one statement batch.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	for _, item := range order.Items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.OrderID = order.ID
	}

	orderM := fromOrderDomain(order)
	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrProductsNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt

	return nil
}

// FindByID reads from the primary. It runs right after checkout (the client
// fetching its new order, the event worker) where a lagging replica would
// report the order missing.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel
	err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Preload("Items").
		Where("id = ?", id).
		First(&orderM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return toOrderDomain(&orderM), nil
}

func (repo *orderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	var models []*model.OrderModel
	err := repo.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders by user")
	}

	return toOrdersDomain(models), nil
}

func (repo *orderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]*entity.Order, int64, error) {
	var total int64
	if err := repo.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count orders")
	}

	var models []*model.OrderModel
	err := repo.filtered(ctx, filter).
		Preload("Items").
		Preload("User").
		Order("created_at DESC, id ASC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list orders")
	}

	return toOrdersDomain(models), total, nil
}

func (repo *orderRepository) filtered(ctx context.Context, filter repository.OrderFilter) *gorm.DB {
	query := repo.db.WithContext(ctx).Model(&model.OrderModel{})
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}

	return query
}

func (repo *orderRepository) ListRecent(ctx context.Context, limit int) ([]*entity.Order, error) {
	var models []*model.OrderModel
	err := repo.db.WithContext(ctx).
		Preload("Items").
		Preload("User").
		Order("created_at DESC, id ASC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list recent orders")
	}

	return toOrdersDomain(models), nil
}

func (repo *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     string(status),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

func (repo *orderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.OrderModel{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count orders")
	}

	return count, nil
}

func (repo *orderRepository) SumTotals(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Select("COALESCE(SUM(total), 0)").
		Row().
		Scan(&sum)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "failed to sum order totals")
	}

	return sum, nil
}
