package impl

import (
	"context"
	"math"
	"testing"

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

type orderServiceFixtures struct {
	service   usecase.OrderUsecase
	txManager *mockRepo.MockTransactionManager
	orderRepo *mockRepo.MockOrderRepository
	publisher *mockSvc.MockEventPublisher
	qrService *mockSvc.MockQRCodeService
	metrics   *mockSvc.MockMetricsRecorder
}

func createTestOrderService(t *testing.T) orderServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	orderRepo := mockRepo.NewMockOrderRepository(t)
	publisher := mockSvc.NewMockEventPublisher(t)
	qrService := mockSvc.NewMockQRCodeService(t)
	metrics := mockSvc.NewMockMetricsRecorder(t)

	return orderServiceFixtures{
		service: NewOrderService(OrderServiceParams{
			TxManager: txManager,
			OrderRepo: orderRepo,
			Publisher: publisher,
			QRService: qrService,
			Metrics:   metrics,
			Config:    newTestConfig(),
			Logger:    newDiscardLogger(),
		}),
		txManager: txManager,
		orderRepo: orderRepo,
		publisher: publisher,
		qrService: qrService,
		metrics:   metrics,
	}
}

func testShippingAddress() usecase.ShippingAddressInput {
	return usecase.ShippingAddressInput{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Phone:     "555-0100",
		Address:   "1 Main St",
		City:      "Springfield",
		State:     "IL",
		ZipCode:   "62701",
	}
}

func testProduct(name, price string, stock int) *entity.Product {
	product := &entity.Product{ID: uuid.New(), Name: name, Price: decimal.RequireFromString(price)}
	product.SetStockCount(stock)

	return product
}

func TestOrderService_PlaceOrder_MergesLinesAndAppliesPromo(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()
	userID := uuid.New()

	kibble := testProduct("Kibble", "20.00", 10)
	toy := testProduct("Toy", "5.00", 3)
	promo := "save10 "

	repos := newTxRepos(t)
	expectTx(ctx, fx.txManager, repos)
	repos.products.EXPECT().FindByIDs(ctx, []uuid.UUID{kibble.ID, toy.ID}).Return([]*entity.Product{toy, kibble}, nil)
	repos.promoCodes.EXPECT().FindByCode(ctx, "SAVE10").
		Return(&entity.PromoCode{Code: "SAVE10", DiscountPercent: 10, Active: true}, nil)
	repos.products.EXPECT().DecrementStock(ctx, kibble.ID, 2).Return(nil)
	repos.products.EXPECT().DecrementStock(ctx, toy.ID, 1).Return(nil)
	repos.orders.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Order")).
		RunAndReturn(func(_ context.Context, order *entity.Order) error {
			order.ID = uuid.New()
			return nil
		})
	fx.metrics.EXPECT().RecordOrderOperation("place_order", true)
	fx.publisher.EXPECT().
		PublishOrderEvent(ctx, mock.MatchedBy(func(e *service.OrderEvent) bool {
			return e.Type == service.EventOrderPlaced && e.ItemCount == 3 && e.Total == "46.49"
		})).
		Return(nil)

	order, err := fx.service.PlaceOrder(ctx, userID, &usecase.PlaceOrderInput{
		Items: []usecase.OrderItemInput{
			{ProductID: kibble.ID, Quantity: 1},
			{ProductID: toy.ID, Quantity: 1},
			{ProductID: kibble.ID, Quantity: 1},
		},
		ShippingAddress: testShippingAddress(),
		PromoCode:       &promo,
	})

	require.NoError(t, err)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, "Kibble", order.Items[0].ProductName)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.Equal(t, "45.00", order.Subtotal.StringFixed(2))
	assert.Equal(t, "4.50", order.Discount.StringFixed(2))
	assert.Equal(t, "5.99", order.ShippingCost.StringFixed(2))
	assert.Equal(t, "46.49", order.Total.StringFixed(2))
	require.NotNil(t, order.PromoCode)
	assert.Equal(t, "SAVE10", *order.PromoCode)
	assert.Equal(t, userID, order.UserID)
}

func TestOrderService_PlaceOrder_UnknownPromoIgnored(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()
	product := testProduct("Bed", "60.00", 1)
	promo := "nope"

	repos := newTxRepos(t)
	expectTx(ctx, fx.txManager, repos)
	repos.products.EXPECT().FindByIDs(ctx, []uuid.UUID{product.ID}).Return([]*entity.Product{product}, nil)
	repos.promoCodes.EXPECT().FindByCode(ctx, "NOPE").Return(nil, repository.ErrPromoCodeNotFound)
	repos.products.EXPECT().DecrementStock(ctx, product.ID, 1).Return(nil)
	repos.orders.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Order")).Return(nil)
	fx.metrics.EXPECT().RecordOrderOperation("place_order", true)
	fx.publisher.EXPECT().PublishOrderEvent(ctx, mock.Anything).Return(errors.New("broker down"))

	order, err := fx.service.PlaceOrder(ctx, uuid.New(), &usecase.PlaceOrderInput{
		Items:           []usecase.OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		ShippingAddress: testShippingAddress(),
		PromoCode:       &promo,
	})

	require.NoError(t, err)
	require.NotNil(t, order.PromoCode)
	assert.Equal(t, "NOPE", *order.PromoCode)
	assert.True(t, order.Discount.IsZero())
	assert.True(t, order.ShippingCost.IsZero())
	assert.Equal(t, "60.00", order.Total.StringFixed(2))
}

func TestOrderService_PlaceOrder_MissingProduct(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()
	product := testProduct("Bed", "60.00", 1)
	missing := uuid.New()

	repos := newTxRepos(t)
	expectTx(ctx, fx.txManager, repos)
	repos.products.EXPECT().FindByIDs(ctx, []uuid.UUID{product.ID, missing}).Return([]*entity.Product{product}, nil)
	fx.metrics.EXPECT().RecordOrderOperation("place_order", false)

	_, err := fx.service.PlaceOrder(ctx, uuid.New(), &usecase.PlaceOrderInput{
		Items: []usecase.OrderItemInput{
			{ProductID: product.ID, Quantity: 1},
			{ProductID: missing, Quantity: 1},
		},
		ShippingAddress: testShippingAddress(),
	})

	assert.ErrorIs(t, err, domainerrors.ErrProductsNotFound)
}

func TestOrderService_PlaceOrder_InsufficientStock(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()
	product := testProduct("Catnip", "3.00", 2)

	repos := newTxRepos(t)
	expectTx(ctx, fx.txManager, repos)
	repos.products.EXPECT().FindByIDs(ctx, []uuid.UUID{product.ID}).Return([]*entity.Product{product}, nil)
	fx.metrics.EXPECT().RecordOrderOperation("place_order", false)

	_, err := fx.service.PlaceOrder(ctx, uuid.New(), &usecase.PlaceOrderInput{
		Items:           []usecase.OrderItemInput{{ProductID: product.ID, Quantity: 3}},
		ShippingAddress: testShippingAddress(),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInsufficientStock)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, `Insufficient stock for "Catnip".`, appErr.Message())
}

func TestOrderService_PlaceOrder_LostStockRace(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()
	product := testProduct("Leash", "12.00", 1)

	repos := newTxRepos(t)
	expectTx(ctx, fx.txManager, repos)
	repos.products.EXPECT().FindByIDs(ctx, []uuid.UUID{product.ID}).Return([]*entity.Product{product}, nil)
	repos.products.EXPECT().DecrementStock(ctx, product.ID, 1).Return(repository.ErrInsufficientStock)
	fx.metrics.EXPECT().RecordOrderOperation("place_order", false)

	_, err := fx.service.PlaceOrder(ctx, uuid.New(), &usecase.PlaceOrderInput{
		Items:           []usecase.OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		ShippingAddress: testShippingAddress(),
	})

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, `Insufficient stock for "Leash".`, appErr.Message())
}

func TestOrderService_GetOrder_Access(t *testing.T) {
	ownerID := uuid.New()
	order := &entity.Order{ID: uuid.New(), UserID: ownerID}

	tests := []struct {
		name      string
		principal *entity.Principal
		wantErr   error
	}{
		{name: "owner", principal: &entity.Principal{UserID: ownerID, Role: entity.RoleCustomer}},
		{name: "admin", principal: &entity.Principal{UserID: uuid.New(), Role: entity.RoleAdmin}},
		{name: "stranger", principal: &entity.Principal{UserID: uuid.New(), Role: entity.RoleCustomer}, wantErr: domainerrors.ErrOrderAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestOrderService(t)
			ctx := context.Background()
			fx.orderRepo.EXPECT().FindByID(ctx, order.ID).Return(order, nil)

			got, err := fx.service.GetOrder(ctx, tt.principal, order.ID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, order, got)
		})
	}
}

func TestOrderService_GetOrder_NotFound(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()
	id := uuid.New()
	fx.orderRepo.EXPECT().FindByID(ctx, id).Return(nil, repository.ErrOrderNotFound)

	_, err := fx.service.GetOrder(ctx, &entity.Principal{UserID: uuid.New()}, id)

	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}

func TestOrderService_OrderQR(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()
	ownerID := uuid.New()
	order := &entity.Order{ID: uuid.New(), UserID: ownerID}

	fx.orderRepo.EXPECT().FindByID(ctx, order.ID).Return(order, nil)
	fx.qrService.EXPECT().GenerateOrderQR(order.ID).Return([]byte("png"), nil)

	png, err := fx.service.OrderQR(ctx, &entity.Principal{UserID: ownerID}, order.ID)

	require.NoError(t, err)
	assert.Equal(t, []byte("png"), png)
}

func TestOrderService_ListMyOrders(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()
	userID := uuid.New()
	orders := []*entity.Order{{ID: uuid.New(), UserID: userID}}

	fx.orderRepo.EXPECT().ListByUser(ctx, userID).Return(orders, nil)

	got, err := fx.service.ListMyOrders(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, orders, got)
}

func TestMergeOrderLines(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	lines, err := mergeOrderLines([]usecase.OrderItemInput{
		{ProductID: b, Quantity: 1},
		{ProductID: a, Quantity: 2},
		{ProductID: b, Quantity: 4},
	})

	require.NoError(t, err)
	assert.Equal(t, []orderLine{{productID: b, quantity: 5}, {productID: a, quantity: 2}}, lines)
}

func TestMergeOrderLines_QuantityBounds(t *testing.T) {
	p := uuid.New()

	tests := []struct {
		name      string
		items     []usecase.OrderItemInput
		wantField string
	}{
		{
			name:      "merged total wraps past max int",
			items:     []usecase.OrderItemInput{{ProductID: p, Quantity: math.MaxInt}, {ProductID: p, Quantity: 10}},
			wantField: "items[0].quantity",
		},
		{
			name:      "merged total exceeds line cap",
			items:     []usecase.OrderItemInput{{ProductID: p, Quantity: 600}, {ProductID: p, Quantity: 401}},
			wantField: "items[1].quantity",
		},
		{
			name:      "negative quantity",
			items:     []usecase.OrderItemInput{{ProductID: p, Quantity: 2}, {ProductID: p, Quantity: -1}},
			wantField: "items[1].quantity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := mergeOrderLines(tt.items)

			assert.Nil(t, lines)
			var validationErr *domainerrors.ValidationError
			require.True(t, errors.As(err, &validationErr))
			require.Len(t, validationErr.Fields(), 1)
			assert.Equal(t, tt.wantField, validationErr.Fields()[0].Field)
		})
	}

	lines, err := mergeOrderLines([]usecase.OrderItemInput{
		{ProductID: p, Quantity: 999},
		{ProductID: p, Quantity: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, []orderLine{{productID: p, quantity: usecase.MaxLineQuantity}}, lines)
}

func TestOrderService_PlaceOrder_OverflowingQuantityRejected(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()
	product := testProduct("Bed", "60.00", 5)

	fx.metrics.EXPECT().RecordOrderOperation("place_order", false)

	order, err := fx.service.PlaceOrder(ctx, uuid.New(), &usecase.PlaceOrderInput{
		Items: []usecase.OrderItemInput{
			{ProductID: product.ID, Quantity: math.MaxInt},
			{ProductID: product.ID, Quantity: 10},
		},
		ShippingAddress: testShippingAddress(),
	})

	assert.Nil(t, order)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	fx.txManager.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
