package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pawparadise/config"
	apimiddleware "pawparadise/internal/delivery/api/middleware"
	"pawparadise/internal/delivery/api/router"
	"pawparadise/internal/delivery/api/router/handler"
	"pawparadise/internal/domain/entity"
	domainerrors "pawparadise/internal/domain/errors"
	"pawparadise/internal/errors"
	"pawparadise/internal/infra/metrics"
	mockusecase "pawparadise/internal/mocks/usecase"
	"pawparadise/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type testAPI struct {
	echo        *echo.Echo
	auth        *mockusecase.MockAuthUsecase
	catalog     *mockusecase.MockCatalogUsecase
	orders      *mockusecase.MockOrderUsecase
	reviews     *mockusecase.MockReviewUsecase
	promos      *mockusecase.MockPromoUsecase
	testimonial *mockusecase.MockTestimonialUsecase
	admin       *mockusecase.MockAdminUsecase
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	cfg := &config.Config{}
	cfg.Env.Env = config.EnvTest
	cfg.ApplyDefaults()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	api := &testAPI{
		auth:        mockusecase.NewMockAuthUsecase(t),
		catalog:     mockusecase.NewMockCatalogUsecase(t),
		orders:      mockusecase.NewMockOrderUsecase(t),
		reviews:     mockusecase.NewMockReviewUsecase(t),
		promos:      mockusecase.NewMockPromoUsecase(t),
		testimonial: mockusecase.NewMockTestimonialUsecase(t),
		admin:       mockusecase.NewMockAdminUsecase(t),
	}

	api.echo = NewEcho(ServerParams{
		Cfg:     cfg,
		Logger:  logger,
		Metrics: metrics.New(),
		RouterParams: router.RouterParams{
			HealthHandler:  handler.NewHealthHandler(),
			AuthHandler:    handler.NewAuthHandler(handler.AuthHandlerParams{AuthUC: api.auth, Logger: logger}),
			ProductHandler: handler.NewProductHandler(handler.ProductHandlerParams{CatalogUC: api.catalog}),
			OrderHandler:   handler.NewOrderHandler(handler.OrderHandlerParams{OrderUC: api.orders, Logger: logger}),
			ReviewHandler:  handler.NewReviewHandler(handler.ReviewHandlerParams{ReviewUC: api.reviews}),
			StorefrontHandler: handler.NewStorefrontHandler(handler.StorefrontHandlerParams{
				PromoUC:       api.promos,
				TestimonialUC: api.testimonial,
			}),
			AdminHandler:   handler.NewAdminHandler(handler.AdminHandlerParams{AdminUC: api.admin, Logger: logger}),
			AuthMiddleware: apimiddleware.NewAuthMiddleware(api.auth),
		},
	})

	return api
}

func (a *testAPI) do(method, path, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)

	return rec
}

func (a *testAPI) loginAs(token string, role entity.Role) *entity.Principal {
	p := &entity.Principal{UserID: uuid.New(), Role: role}
	a.auth.EXPECT().Authenticate(mock.Anything, token).Return(p, nil)

	return p
}

type envelope struct {
	Data json.RawMessage `json:"data"`
	Error *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
	Meta struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	assert.NotEmpty(t, env.Meta.RequestID)

	return env
}

func TestHealth_IsNotEnveloped(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/api/health", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["timestamp"])
	assert.NotContains(t, body, "data")
}

func TestSignup(t *testing.T) {
	api := newTestAPI(t)
	user := &entity.User{
		ID:        uuid.New(),
		Name:      "Ada",
		Email:     "ada@example.com",
		Role:      entity.RoleCustomer,
		AvatarURL: "https://example.com/a.png",
		CreatedAt: time.Date(2026, 3, 4, 23, 0, 0, 0, time.UTC),
	}
	api.auth.EXPECT().Signup(mock.Anything, &usecase.SignupInput{Name: "Ada", Email: "ada@example.com", Password: "password1"}).
		Return(&usecase.AuthOutput{Token: "tok", User: user}, nil)

	rec := api.do(http.MethodPost, "/api/auth/signup", `{"name":"Ada","email":"ada@example.com","password":"password1"}`, "")

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	env := decode(t, rec)
	assert.JSONEq(t, `{
		"token": "tok",
		"user": {
			"id": "`+user.ID.String()+`",
			"name": "Ada",
			"email": "ada@example.com",
			"role": "customer",
			"avatar": "https://example.com/a.png",
			"joinedDate": "2026-03-04"
		}
	}`, string(env.Data))
}

func TestSignup_ValidationDetails(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/api/auth/signup", `{"name":"","email":"nope","password":"short"}`, "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)

	var details []domainerrors.FieldError
	require.NoError(t, json.Unmarshal(env.Error.Details, &details))
	fields := make([]string, 0, len(details))
	for _, d := range details {
		fields = append(fields, d.Field)
	}
	assert.ElementsMatch(t, []string{"name", "email", "password"}, fields)
}

func TestSignup_MalformedBody(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/api/auth/signup", `{"name":`, "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_INPUT", decode(t, rec).Error.Code)
}

func TestLogin_InvalidCredentialsHasNoDetails(t *testing.T) {
	api := newTestAPI(t)
	api.auth.EXPECT().Login(mock.Anything, mock.Anything).
		Return(nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "failed to log in"))

	rec := api.do(http.MethodPost, "/api/auth/login", `{"email":"a@b.co","password":"x"}`, "")

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "INVALID_CREDENTIALS", env.Error.Code)
	assert.Equal(t, "Invalid email or password.", env.Error.Message)
	assert.Empty(t, env.Error.Details)
}

func TestAuthentication(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		api := newTestAPI(t)

		rec := api.do(http.MethodGet, "/api/auth/me", "", "")

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "AUTHENTICATION_REQUIRED", decode(t, rec).Error.Code)
	})

	t.Run("deleted user", func(t *testing.T) {
		api := newTestAPI(t)
		api.auth.EXPECT().Authenticate(mock.Anything, "stale").Return(nil, domainerrors.ErrUserNoLongerExists)

		rec := api.do(http.MethodGet, "/api/orders", "", "stale")

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "USER_NO_LONGER_EXISTS", decode(t, rec).Error.Code)
	})

	t.Run("customer on admin route", func(t *testing.T) {
		api := newTestAPI(t)
		api.loginAs("cust", entity.RoleCustomer)

		rec := api.do(http.MethodGet, "/api/admin/dashboard", "", "cust")

		require.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "ADMIN_REQUIRED", decode(t, rec).Error.Code)
	})
}

func TestListProducts_ParsesQuery(t *testing.T) {
	api := newTestAPI(t)
	product := &entity.Product{
		ID:        uuid.New(),
		Name:      "Chew Toy",
		Slug:      "chew-toy",
		Category:  entity.CategoryToys,
		PetType:   entity.PetTypeDog,
		Price:     decimal.RequireFromString("12.5"),
		InStock:   true,
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	api.catalog.EXPECT().ListProducts(mock.Anything, mock.MatchedBy(func(in *usecase.ListProductsInput) bool {
		return assert.ObjectsAreEqual([]entity.Category{entity.CategoryToys, entity.CategoryFood}, in.Categories) &&
			in.PetType == entity.PetTypeDog &&
			in.MinPrice != nil && in.MinPrice.Equal(decimal.NewFromInt(5)) &&
			in.MaxPrice == nil &&
			in.Featured &&
			in.Sort == "price-asc" &&
			in.Page == 2 && in.Limit == 10
	})).Return(&usecase.ProductPage{Products: []*entity.Product{product}, Total: 11, Page: 2, TotalPages: 2}, nil)

	rec := api.do(http.MethodGet, "/api/products?category=toys,Food&petType=dog&minPrice=5&featured=true&sort=price-asc&page=2&limit=10", "", "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var page struct {
		Products []map[string]any `json:"products"`
		Total    int              `json:"total"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &page))
	require.Len(t, page.Products, 1)
	assert.Equal(t, 11, page.Total)
	assert.Equal(t, 12.5, page.Products[0]["price"])
	assert.Equal(t, "2026-01-02", page.Products[0]["dateAdded"])
	assert.NotContains(t, page.Products[0], "originalPrice")
	assert.Equal(t, []any{}, page.Products[0]["images"])
}

func TestListProducts_BadPrice(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/api/products?maxPrice=cheap", "", "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", decode(t, rec).Error.Code)
}

func TestProductRoutes_StaticSegmentsBeatSlug(t *testing.T) {
	api := newTestAPI(t)
	api.catalog.EXPECT().Brands(mock.Anything).Return([]string{"Acme"}, nil)
	api.catalog.EXPECT().GetProduct(mock.Anything, "chew-toy").Return(nil, domainerrors.ErrProductNotFound)

	rec := api.do(http.MethodGet, "/api/products/brands", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["Acme"]`, string(decode(t, rec).Data))

	rec = api.do(http.MethodGet, "/api/products/chew-toy", "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "PRODUCT_NOT_FOUND", decode(t, rec).Error.Code)
}

func TestPriceRange_RendersNumbers(t *testing.T) {
	api := newTestAPI(t)
	api.catalog.EXPECT().PriceRange(mock.Anything).
		Return(&entity.PriceRange{Min: decimal.RequireFromString("4.5"), Max: decimal.NewFromInt(120)}, nil)

	rec := api.do(http.MethodGet, "/api/products/price-range", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"min":4.50,"max":120.00}`, string(decode(t, rec).Data))
}

func TestPlaceOrder(t *testing.T) {
	api := newTestAPI(t)
	p := api.loginAs("tok", entity.RoleCustomer)
	productID := uuid.New()
	code := "SAVE10"
	order := &entity.Order{
		ID:           uuid.New(),
		UserID:       p.UserID,
		Status:       entity.OrderStatusPending,
		Subtotal:     decimal.RequireFromString("45"),
		Discount:     decimal.RequireFromString("4.5"),
		ShippingCost: decimal.RequireFromString("5.99"),
		Total:        decimal.RequireFromString("46.49"),
		PromoCode:    &code,
		Items: []*entity.OrderItem{
			{ID: uuid.New(), ProductID: productID, ProductName: "Kibble", Quantity: 3, Price: decimal.NewFromInt(15)},
		},
	}
	api.orders.EXPECT().PlaceOrder(mock.Anything, p.UserID, mock.MatchedBy(func(in *usecase.PlaceOrderInput) bool {
		return len(in.Items) == 1 && in.Items[0].ProductID == productID && in.Items[0].Quantity == 3 &&
			in.PromoCode != nil && *in.PromoCode == "save10"
	})).Return(order, nil)

	body := `{
		"items": [{"productId": "` + productID.String() + `", "quantity": 3}],
		"shippingAddress": {
			"firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com", "phone": "555",
			"address": "1 Way", "city": "London", "state": "LDN", "zipCode": "10001"
		},
		"promoCode": "save10"
	}`
	rec := api.do(http.MethodPost, "/api/orders", body, "tok")

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var got map[string]any
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &got))
	assert.Equal(t, 46.49, got["total"])
	assert.Equal(t, 4.5, got["discount"])
	assert.Equal(t, "SAVE10", got["promoCode"])
	assert.Equal(t, "pending", got["status"])
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	api := newTestAPI(t)
	api.loginAs("tok", entity.RoleCustomer)

	body := `{"items": [], "shippingAddress": {"firstName": "A", "lastName": "B", "email": "a@b.co", "phone": "1",
		"address": "x", "city": "y", "state": "z", "zipCode": "1"}}`
	rec := api.do(http.MethodPost, "/api/orders", body, "tok")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	assert.Contains(t, string(env.Error.Details), "At least one item is required.")
}

func TestGetOrder(t *testing.T) {
	t.Run("malformed id is not found", func(t *testing.T) {
		api := newTestAPI(t)
		api.loginAs("tok", entity.RoleCustomer)

		rec := api.do(http.MethodGet, "/api/orders/not-a-uuid", "", "tok")

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "ORDER_NOT_FOUND", decode(t, rec).Error.Code)
	})

	t.Run("someone else's order", func(t *testing.T) {
		api := newTestAPI(t)
		p := api.loginAs("tok", entity.RoleCustomer)
		orderID := uuid.New()
		api.orders.EXPECT().GetOrder(mock.Anything, p, orderID).Return(nil, domainerrors.ErrOrderAccessDenied)

		rec := api.do(http.MethodGet, "/api/orders/"+orderID.String(), "", "tok")

		require.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestOrderQR_ServesPNG(t *testing.T) {
	api := newTestAPI(t)
	p := api.loginAs("tok", entity.RoleCustomer)
	orderID := uuid.New()
	png := []byte{0x89, 'P', 'N', 'G'}
	api.orders.EXPECT().OrderQR(mock.Anything, p, orderID).Return(png, nil)

	rec := api.do(http.MethodGet, "/api/orders/"+orderID.String()+"/qr", "", "tok")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, png, rec.Body.Bytes())
}

func TestReviews(t *testing.T) {
	t.Run("malformed product id lists nothing", func(t *testing.T) {
		api := newTestAPI(t)

		rec := api.do(http.MethodGet, "/api/reviews/nope", "", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, string(decode(t, rec).Data))
	})

	t.Run("duplicate review conflicts", func(t *testing.T) {
		api := newTestAPI(t)
		p := api.loginAs("tok", entity.RoleCustomer)
		productID := uuid.New()
		api.reviews.EXPECT().CreateReview(mock.Anything, productID, p.UserID, &usecase.CreateReviewInput{Rating: 5, Comment: "Great"}).
			Return(nil, errors.Wrap(domainerrors.ErrReviewAlreadyExists, "failed to create review"))

		rec := api.do(http.MethodPost, "/api/reviews/"+productID.String(), `{"rating":5,"comment":"Great"}`, "tok")

		require.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "REVIEW_ALREADY_EXISTS", decode(t, rec).Error.Code)
	})

	t.Run("rating out of range", func(t *testing.T) {
		api := newTestAPI(t)
		api.loginAs("tok", entity.RoleCustomer)

		rec := api.do(http.MethodPost, "/api/reviews/"+uuid.NewString(), `{"rating":6,"comment":"Great"}`, "tok")

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestValidatePromo(t *testing.T) {
	api := newTestAPI(t)
	api.promos.EXPECT().ValidatePromoCode(mock.Anything, "welcome10").
		Return(&entity.PromoCode{Code: "WELCOME10", DiscountPercent: 10, Active: true}, nil)

	rec := api.do(http.MethodPost, "/api/promo/validate", `{"code":"welcome10"}`, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"code":"WELCOME10","discountPercent":10}`, string(decode(t, rec).Data))
}

func TestAdminUpdateProduct_NullClearsOptionalFields(t *testing.T) {
	api := newTestAPI(t)
	api.loginAs("admin", entity.RoleAdmin)
	productID := uuid.New()
	api.admin.EXPECT().UpdateProduct(mock.Anything, productID, mock.MatchedBy(func(in *usecase.UpdateProductInput) bool {
		return in.OriginalPrice.Set && in.OriginalPrice.Value == nil &&
			!in.Dimensions.Set &&
			in.Name != nil && *in.Name == "New Name" &&
			in.StockCount == nil
	})).Return(&entity.Product{ID: productID, Name: "New Name"}, nil)

	rec := api.do(http.MethodPatch, "/api/admin/products/"+productID.String(),
		`{"name":"New Name","originalPrice":null,"slug":"ignored","inStock":false}`, "admin")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"id":"`+productID.String()+`","name":"New Name"}`, string(decode(t, rec).Data))
}

func TestAdminDeleteProduct_InUse(t *testing.T) {
	api := newTestAPI(t)
	api.loginAs("admin", entity.RoleAdmin)
	productID := uuid.New()
	api.admin.EXPECT().DeleteProduct(mock.Anything, productID).Return(domainerrors.ErrProductInUse)

	rec := api.do(http.MethodDelete, "/api/admin/products/"+productID.String(), "", "admin")

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, domainerrors.ErrProductInUse.ErrorCode(), decode(t, rec).Error.Code)
}

func TestAdminListOrders(t *testing.T) {
	api := newTestAPI(t)
	api.loginAs("admin", entity.RoleAdmin)
	order := &entity.Order{
		ID:       uuid.New(),
		Status:   entity.OrderStatusShipped,
		Total:    decimal.RequireFromString("20"),
		Customer: &entity.OrderCustomer{Name: "Ada", Email: "ada@example.com"},
		Items: []*entity.OrderItem{
			{ProductName: "Kibble", Quantity: 2, Price: decimal.NewFromInt(5)},
			{ProductName: "Ball", Quantity: 1, Price: decimal.NewFromInt(10)},
		},
	}
	api.admin.EXPECT().ListOrders(mock.Anything, mock.MatchedBy(func(in *usecase.ListOrdersInput) bool {
		return in.Status != nil && *in.Status == entity.OrderStatusShipped && in.Page == 1
	})).Return(&usecase.OrderPage{Orders: []*entity.Order{order}, Total: 1, Page: 1, TotalPages: 1}, nil)

	rec := api.do(http.MethodGet, "/api/admin/orders?status=shipped&page=1", "", "admin")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var page struct {
		Orders []map[string]any `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &page))
	require.Len(t, page.Orders, 1)
	assert.Equal(t, "Ada", page.Orders[0]["customer"])
	assert.Equal(t, float64(2), page.Orders[0]["itemCount"])
	assert.Equal(t, 20.0, page.Orders[0]["total"])
}

func TestUnhandledErrorIsInternal(t *testing.T) {
	api := newTestAPI(t)
	api.testimonial.EXPECT().ListTestimonials(mock.Anything).Return(nil, errors.New("connection refused"))

	rec := api.do(http.MethodGet, "/api/testimonials", "", "")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "INTERNAL_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Message, "connection refused")
}

func TestUnknownRoute(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/api/nothing-here", "", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decode(t, rec).Error.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	api := newTestAPI(t)
	api.do(http.MethodGet, "/api/health", "", "")

	rec := api.do(http.MethodGet, "/metrics", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `pawparadise_http_requests_total{method="GET",path="/api/health",status="200"} 1`)
}
