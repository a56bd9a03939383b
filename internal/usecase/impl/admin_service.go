package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

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
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"
)

// maxSlugAttempts bounds the numeric suffix search for a free slug.
const maxSlugAttempts = 100

// adminService implements the AdminUsecase interface.
type adminService struct {
	txManager         repository.TransactionManager
	userRepo          repository.UserRepository
	productRepo       repository.ProductRepository
	orderRepo         repository.OrderRepository
	cache             service.CatalogCache
	publisher         service.EventPublisher
	metrics           service.MetricsRecorder
	strictTransitions bool
	logger            *slog.Logger
}

// AdminServiceParams holds dependencies for AdminService, injected by Fx.
type AdminServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	UserRepo    repository.UserRepository
	ProductRepo repository.ProductRepository
	OrderRepo   repository.OrderRepository
	Cache       service.CatalogCache
	Publisher   service.EventPublisher
	Metrics     service.MetricsRecorder
	Config      *config.Config
	Logger      *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(params AdminServiceParams) usecase.AdminUsecase {
	strict := false
	if params.Config != nil && params.Config.Orders != nil {
		strict = params.Config.Orders.StrictTransitions
	}

	return &adminService{
		txManager:         params.TxManager,
		userRepo:          params.UserRepo,
		productRepo:       params.ProductRepo,
		orderRepo:         params.OrderRepo,
		cache:             params.Cache,
		publisher:         params.Publisher,
		metrics:           params.Metrics,
		strictTransitions: strict,
		logger:            params.Logger,
	}
}

func (srv *adminService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Dashboard gathers the store counters and the latest orders concurrently.
func (srv *adminService) Dashboard(ctx context.Context) (*usecase.DashboardOutput, error) {
	output := &usecase.DashboardOutput{}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		count, err := srv.productRepo.Count(groupCtx)
		output.Stats.TotalProducts = count

		return errors.Wrap(err, "failed to count products")
	})
	group.Go(func() error {
		count, err := srv.orderRepo.Count(groupCtx)
		output.Stats.TotalOrders = count

		return errors.Wrap(err, "failed to count orders")
	})
	group.Go(func() error {
		count, err := srv.userRepo.Count(groupCtx)
		output.Stats.TotalUsers = count

		return errors.Wrap(err, "failed to count users")
	})
	group.Go(func() error {
		revenue, err := srv.orderRepo.SumTotals(groupCtx)
		output.Stats.TotalRevenue = revenue

		return errors.Wrap(err, "failed to sum revenue")
	})
	group.Go(func() error {
		orders, err := srv.orderRepo.ListRecent(groupCtx, constants.RecentOrdersLimit)
		output.RecentOrders = orders

		return errors.Wrap(err, "failed to list recent orders")
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return output, nil
}

// ListOrders returns one page of every customer's orders, newest first.
func (srv *adminService) ListOrders(ctx context.Context, input *usecase.ListOrdersInput) (*usecase.OrderPage, error) {
	if input.Status != nil && !input.Status.IsValid() {
		return nil, domainerrors.NewValidationError(domainerrors.FieldError{
			Field:   "status",
			Message: "Unknown order status \"" + string(*input.Status) + "\".",
		})
	}

	page, limit := util.NormalizePage(input.Page, input.Limit, constants.DefaultPageSize, constants.MaxPageSize)

	orders, total, err := srv.orderRepo.List(ctx, repository.OrderFilter{
		Status: input.Status,
		Offset: util.Offset(page, limit),
		Limit:  limit,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return &usecase.OrderPage{
		Orders:     orders,
		Total:      total,
		Page:       page,
		TotalPages: util.TotalPages(total, limit),
	}, nil
}

// UpdateOrderStatus moves an order to status. Any valid status is accepted
// unless strict transitions are configured.
func (srv *adminService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status entity.OrderStatus) (*entity.Order, error) {
	if !status.IsValid() {
		return nil, domainerrors.NewValidationError(domainerrors.FieldError{
			Field:   "status",
			Message: "Status must be one of pending, processing, shipped, delivered, cancelled.",
		})
	}

	var (
		order    *entity.Order
		previous entity.OrderStatus
	)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		found, err := orderRepo.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return domainerrors.ErrOrderNotFound
			}

			return errors.Wrap(err, "failed to find order")
		}

		previous = found.Status
		if srv.strictTransitions && previous != status && !previous.CanTransitionTo(status) {
			return domainerrors.ErrInvalidStatusTransition.WithMessage(
				fmt.Sprintf("Cannot change order status from %s to %s.", previous, status),
			)
		}

		if err := orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return domainerrors.ErrOrderNotFound
			}

			return errors.Wrap(err, "failed to update order status")
		}

		found.Status = status
		order = found

		return nil
	})

	srv.metrics.RecordOrderOperation(operationUpdateStatus, err == nil)

	if err != nil {
		return nil, errors.Wrap(err, "failed to update order status")
	}

	srv.log(ctx).Info("Order status updated",
		slog.String("orderID", orderID.String()),
		slog.String("from", string(previous)),
		slog.String("to", string(status)),
	)

	publishOrderEvent(ctx, srv.publisher, srv.log(ctx), newOrderEvent(ctx, service.EventOrderStatusChanged, order, previous))

	return order, nil
}

// CreateProduct adds a catalog product with a unique slug derived from its name.
func (srv *adminService) CreateProduct(ctx context.Context, input *usecase.CreateProductInput) (*entity.Product, error) {
	product := &entity.Product{
		ID:            uuid.New(),
		Name:          strings.TrimSpace(input.Name),
		Category:      input.Category,
		PetType:       input.PetType,
		Brand:         strings.TrimSpace(input.Brand),
		Price:         input.Price,
		OriginalPrice: input.OriginalPrice,
		Image:         input.Image,
		Images:        input.Images,
		Description:   input.Description,
		Features:      input.Features,
		Weight:        input.Weight,
		Dimensions:    input.Dimensions,
		Featured:      input.Featured,
		SKU:           strings.TrimSpace(input.SKU),
	}
	if len(product.Images) == 0 {
		product.Images = []string{product.Image}
	}
	if product.Features == nil {
		product.Features = []string{}
	}
	product.SetStockCount(input.StockCount)

	if err := validateProduct(product); err != nil {
		return nil, err
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		if err := ensureSKUAvailable(ctx, productRepo, product.SKU, nil); err != nil {
			return err
		}

		slug, err := uniqueSlug(ctx, productRepo, product.Name, nil)
		if err != nil {
			return err
		}
		product.Slug = slug

		return productRepo.Create(ctx, product)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}

	srv.invalidateCatalog(ctx)
	srv.log(ctx).Info("Product created", slog.String("productID", product.ID.String()), slog.String("slug", product.Slug))

	return product, nil
}

// UpdateProduct applies a partial update. A new name regenerates the slug.
func (srv *adminService) UpdateProduct(ctx context.Context, productID uuid.UUID, input *usecase.UpdateProductInput) (*entity.Product, error) {
	var product *entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		found, err := productRepo.FindByID(ctx, productID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound
			}

			return errors.Wrap(err, "failed to find product")
		}
		product = found

		previousName := product.Name
		previousSKU := product.SKU
		applyProductUpdate(product, input)

		if err := validateProduct(product); err != nil {
			return err
		}

		if product.SKU != previousSKU {
			if err := ensureSKUAvailable(ctx, productRepo, product.SKU, &product.ID); err != nil {
				return err
			}
		}

		if product.Name != previousName {
			slug, err := uniqueSlug(ctx, productRepo, product.Name, &product.ID)
			if err != nil {
				return err
			}
			product.Slug = slug
		}

		if err := productRepo.Update(ctx, product); err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound
			}

			return errors.Wrap(err, "failed to update product")
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update product")
	}

	srv.invalidateCatalog(ctx)

	return product, nil
}

// DeleteProduct removes a product that no order references.
func (srv *adminService) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	if err := srv.productRepo.Delete(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound
		}

		return errors.Wrap(err, "failed to delete product")
	}

	srv.invalidateCatalog(ctx)
	srv.log(ctx).Info("Product deleted", slog.String("productID", productID.String()))

	return nil
}

func (srv *adminService) Inventory(ctx context.Context) ([]*entity.InventoryItem, error) {
	items, err := srv.productRepo.ListInventory(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list inventory")
	}

	return items, nil
}

func (srv *adminService) invalidateCatalog(ctx context.Context) {
	if err := srv.cache.Invalidate(ctx); err != nil {
		srv.log(ctx).Warn("Failed to invalidate catalog cache", slog.Any("error", err))
	}
}

func applyProductUpdate(product *entity.Product, input *usecase.UpdateProductInput) {
	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.PetType != nil {
		product.PetType = *input.PetType
	}
	if input.Brand != nil {
		product.Brand = strings.TrimSpace(*input.Brand)
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.OriginalPrice.Set {
		product.OriginalPrice = input.OriginalPrice.Value
	}
	if input.Image != nil {
		product.Image = *input.Image
	}
	if input.Images != nil {
		product.Images = *input.Images
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Features != nil {
		product.Features = *input.Features
	}
	if input.Weight != nil {
		product.Weight = *input.Weight
	}
	if input.Dimensions.Set {
		product.Dimensions = input.Dimensions.Value
	}
	if input.Featured != nil {
		product.Featured = *input.Featured
	}
	if input.StockCount != nil {
		product.SetStockCount(*input.StockCount)
	}
	if input.SKU != nil {
		product.SKU = strings.TrimSpace(*input.SKU)
	}
}

// validateProduct checks the rules struct tags cannot express.
func validateProduct(product *entity.Product) error {
	var fieldErrors []domainerrors.FieldError
	add := func(field, message string) {
		fieldErrors = append(fieldErrors, domainerrors.FieldError{Field: field, Message: message})
	}

	if product.Name == "" {
		add("name", "Name is required.")
	}
	if !product.Category.IsValid() {
		add("category", "Unknown category \""+string(product.Category)+"\".")
	}
	if !product.PetType.IsValid() {
		add("petType", "Unknown pet type \""+string(product.PetType)+"\".")
	}
	if !product.Price.IsPositive() {
		add("price", "Price must be positive.")
	}
	if product.OriginalPrice != nil && !product.OriginalPrice.IsPositive() {
		add("originalPrice", "Original price must be positive.")
	}
	if product.StockCount < 0 {
		add("stockCount", "Stock count cannot be negative.")
	}
	if product.SKU == "" {
		add("sku", "SKU is required.")
	}

	if len(fieldErrors) > 0 {
		return domainerrors.NewValidationError(fieldErrors...)
	}

	return nil
}

func ensureSKUAvailable(ctx context.Context, productRepo repository.ProductRepository, sku string, excludeID *uuid.UUID) error {
	taken, err := productRepo.SKUTaken(ctx, sku, excludeID)
	if err != nil {
		return errors.Wrap(err, "failed to check SKU")
	}
	if taken {
		return domainerrors.ErrDuplicateSKU.WithMessage("A product with SKU \"" + sku + "\" already exists.")
	}

	return nil
}

// uniqueSlug slugifies name and appends -1, -2, ... until no other product uses it.
func uniqueSlug(ctx context.Context, productRepo repository.ProductRepository, name string, excludeID *uuid.UUID) (string, error) {
	base := util.Slugify(name)
	slug := base

	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		taken, err := productRepo.SlugTaken(ctx, slug, excludeID)
		if err != nil {
			return "", errors.Wrap(err, "failed to check slug")
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, attempt)
	}

	return "", domainerrors.ErrDuplicateSlug
}
