package impl

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"pawparadise/config"
	deliverycontext "pawparadise/internal/delivery/context"
	"pawparadise/internal/domain/entity"
	domainerrors "pawparadise/internal/domain/errors"
	"pawparadise/internal/domain/repository"
	"pawparadise/internal/domain/service"
	"pawparadise/internal/errors"
	"pawparadise/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager repository.TransactionManager
	orderRepo repository.OrderRepository
	publisher service.EventPublisher
	qrService service.QRCodeService
	metrics   service.MetricsRecorder
	policy    entity.ShippingPolicy
	logger    *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	OrderRepo repository.OrderRepository
	Publisher service.EventPublisher
	QRService service.QRCodeService
	Metrics   service.MetricsRecorder
	Config    *config.Config
	Logger    *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager: params.TxManager,
		orderRepo: params.OrderRepo,
		publisher: params.Publisher,
		qrService: params.QRService,
		metrics:   params.Metrics,
		policy:    shippingPolicy(params.Config),
		logger:    params.Logger,
	}
}

// shippingPolicy falls back to the default shop settings when none are configured.
func shippingPolicy(cfg *config.Config) entity.ShippingPolicy {
	if cfg == nil || cfg.Shop == nil {
		cfg = &config.Config{}
		cfg.ApplyDefaults()
	}

	return entity.ShippingPolicy{
		FreeShippingThreshold: cfg.Shop.FreeShippingThreshold,
		FlatShippingCost:      cfg.Shop.FlatShippingCost,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// orderLine is a cart line after duplicate product ids were merged.
type orderLine struct {
	productID uuid.UUID
	quantity  int
}

// mergeOrderLines sums quantities of repeated products, keeping first-seen order.
// Each line and each merged total must stay within [1, MaxLineQuantity].
func mergeOrderLines(items []usecase.OrderItemInput) ([]orderLine, error) {
	index := make(map[uuid.UUID]int, len(items))
	lines := make([]orderLine, 0, len(items))
	for i, item := range items {
		if item.Quantity < 1 || item.Quantity > usecase.MaxLineQuantity {
			return nil, lineQuantityError(i)
		}
		if at, ok := index[item.ProductID]; ok {
			if lines[at].quantity > usecase.MaxLineQuantity-item.Quantity {
				return nil, lineQuantityError(i)
			}
			lines[at].quantity += item.Quantity
			continue
		}
		index[item.ProductID] = len(lines)
		lines = append(lines, orderLine{productID: item.ProductID, quantity: item.Quantity})
	}

	return lines, nil
}

func lineQuantityError(i int) error {
	return domainerrors.NewValidationError(domainerrors.FieldError{
		Field:   "items[" + strconv.Itoa(i) + "].quantity",
		Message: "Must be between 1 and " + strconv.Itoa(usecase.MaxLineQuantity) + " per product.",
	})
}

func insufficientStock(productName string) error {
	return domainerrors.ErrInsufficientStock.WithMessage("Insufficient stock for \"" + productName + "\".")
}

// PlaceOrder prices the cart and writes the order while decrementing stock.
func (srv *orderService) PlaceOrder(ctx context.Context, userID uuid.UUID, input *usecase.PlaceOrderInput) (*entity.Order, error) {
	lines, err := mergeOrderLines(input.Items)
	if err != nil {
		srv.metrics.RecordOrderOperation(operationPlaceOrder, false)

		return nil, err
	}
	productIDs := make([]uuid.UUID, len(lines))
	for i, line := range lines {
		productIDs[i] = line.productID
	}

	promoCode := ""
	if input.PromoCode != nil {
		promoCode = entity.NormalizePromoCode(*input.PromoCode)
	}

	var order *entity.Order

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		// 1. Load every product in the cart
		products, err := productRepo.FindByIDs(ctx, productIDs)
		if err != nil {
			return errors.Wrap(err, "failed to load cart products")
		}
		if len(products) != len(productIDs) {
			return domainerrors.ErrProductsNotFound
		}
		byID := make(map[uuid.UUID]*entity.Product, len(products))
		for _, product := range products {
			byID[product.ID] = product
		}

		// 2. Snapshot prices and check stock
		items := make([]*entity.OrderItem, 0, len(lines))
		for _, line := range lines {
			product := byID[line.productID]
			if !product.HasStock(line.quantity) {
				return insufficientStock(product.Name)
			}
			items = append(items, &entity.OrderItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    line.quantity,
				Price:       product.Price,
			})
		}

		// 3. Resolve the promo code; unknown or inactive codes earn no discount
		// but are still recorded on the order
		discountPercent := 0
		var suppliedCode *string
		if promoCode != "" {
			suppliedCode = &promoCode
			promo, err := repoFactory.PromoCodeRepo().FindByCode(ctx, promoCode)
			switch {
			case err == nil && promo.Active:
				discountPercent = promo.DiscountPercent
			case err == nil || errors.Is(err, repository.ErrPromoCodeNotFound):
				srv.log(ctx).Debug("Promo code earns no discount", slog.String("code", promoCode))
			default:
				return errors.Wrap(err, "failed to look up promo code")
			}
		}

		totals := entity.PriceOrder(items, discountPercent, srv.policy)

		// 4. Decrement stock; the conditional update closes the race with concurrent checkouts
		for _, item := range items {
			if err := productRepo.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				if errors.Is(err, repository.ErrInsufficientStock) {
					return insufficientStock(item.ProductName)
				}

				return errors.Wrap(err, "failed to decrement stock")
			}
		}

		// 5. Write the order
		order = &entity.Order{
			UserID:          userID,
			Status:          entity.OrderStatusPending,
			Subtotal:        totals.Subtotal,
			Discount:        totals.Discount,
			ShippingCost:    totals.ShippingCost,
			Total:           totals.Total,
			PromoCode:       suppliedCode,
			ShippingAddress: shippingAddressFromInput(input.ShippingAddress),
			Items:           items,
		}

		return repoFactory.OrderRepo().Create(ctx, order)
	})

	srv.metrics.RecordOrderOperation(operationPlaceOrder, err == nil)

	if err != nil {
		return nil, errors.Wrap(err, "failed to place order")
	}

	srv.log(ctx).Info("Order placed",
		slog.String("orderID", order.ID.String()),
		slog.String("userID", userID.String()),
		slog.String("total", order.Total.StringFixed(2)),
	)

	publishOrderEvent(ctx, srv.publisher, srv.log(ctx), newOrderEvent(ctx, service.EventOrderPlaced, order, ""))

	return order, nil
}

func shippingAddressFromInput(input usecase.ShippingAddressInput) entity.ShippingAddress {
	return entity.ShippingAddress{
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Email:     strings.TrimSpace(input.Email),
		Phone:     strings.TrimSpace(input.Phone),
		Address:   strings.TrimSpace(input.Address),
		City:      strings.TrimSpace(input.City),
		State:     strings.TrimSpace(input.State),
		ZipCode:   strings.TrimSpace(input.ZipCode),
	}
}

// ListMyOrders returns the caller's orders, newest first.
func (srv *orderService) ListMyOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// GetOrder returns the order when the principal owns it or is an admin.
func (srv *orderService) GetOrder(ctx context.Context, principal *entity.Principal, orderID uuid.UUID) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	if order.UserID != principal.UserID && !principal.IsAdmin() {
		srv.log(ctx).Warn("Order access denied",
			slog.String("orderID", orderID.String()),
			slog.String("userID", principal.UserID.String()),
		)

		return nil, domainerrors.ErrOrderAccessDenied
	}

	return order, nil
}

// OrderQR renders a PNG QR code for an order the principal may read.
func (srv *orderService) OrderQR(ctx context.Context, principal *entity.Principal, orderID uuid.UUID) ([]byte, error) {
	order, err := srv.GetOrder(ctx, principal, orderID)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrService.GenerateOrderQR(order.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate order QR code")
	}

	return png, nil
}
