package handler

import (
	"log/slog"
	"strings"

	"pawparadise/internal/delivery/api/response"
	"pawparadise/internal/domain/entity"
	domainerrors "pawparadise/internal/domain/errors"
	"pawparadise/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// AdminHandlerParams holds dependencies for AdminHandler, injected by Fx.
type AdminHandlerParams struct {
	fx.In

	AdminUC usecase.AdminUsecase
	Logger  *slog.Logger
}

// AdminHandler serves the back office. Routes are guarded by RequireAdmin.
type AdminHandler struct {
	adminUC usecase.AdminUsecase
	logger  *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler
func NewAdminHandler(params AdminHandlerParams) *AdminHandler {
	return &AdminHandler{
		adminUC: params.AdminUC,
		logger:  params.Logger,
	}
}

type dashboardStatsPayload struct {
	TotalProducts int64 `json:"totalProducts"`
	TotalOrders   int64 `json:"totalOrders"`
	TotalUsers    int64 `json:"totalUsers"`
	TotalRevenue  money `json:"totalRevenue"`
}

type dashboardResponse struct {
	Stats        dashboardStatsPayload `json:"stats"`
	RecentOrders []*recentOrderPayload `json:"recentOrders"`
}

type adminOrderListResponse struct {
	Orders     []*adminOrderPayload `json:"orders"`
	Total      int64                `json:"total"`
	Page       int                  `json:"page"`
	TotalPages int                  `json:"totalPages"`
}

// UpdateOrderStatusRequest is the body of PATCH /admin/orders/:id/status
type UpdateOrderStatusRequest struct {
	Status entity.OrderStatus `json:"status" validate:"required"`
}

type orderStatusResponse struct {
	ID     uuid.UUID          `json:"id"`
	Status entity.OrderStatus `json:"status"`
}

// UpdateProductRequest is a partial product update. Keys that are absent stay
// unchanged; derived keys such as slug or rating are not read at all.
type UpdateProductRequest struct {
	Name          *string                        `json:"name" validate:"omitempty,min=1,max=200"`
	Category      *entity.Category               `json:"category" validate:"omitempty,oneof=food toys beds accessories grooming health"`
	PetType       *entity.PetType                `json:"petType" validate:"omitempty,oneof=dog cat bird fish reptile all"`
	Brand         *string                        `json:"brand" validate:"omitempty,min=1,max=100"`
	Price         *decimal.Decimal               `json:"price"`
	OriginalPrice NullableField[decimal.Decimal] `json:"originalPrice"`
	Image         *string                        `json:"image" validate:"omitempty,min=1"`
	Images        *[]string                      `json:"images"`
	Description   *string                        `json:"description" validate:"omitempty,min=1"`
	Features      *[]string                      `json:"features"`
	Weight        *string                        `json:"weight" validate:"omitempty,min=1,max=50"`
	Dimensions    NullableField[string]          `json:"dimensions"`
	Featured      *bool                          `json:"featured"`
	StockCount    *int                           `json:"stockCount" validate:"omitempty,min=0"`
	SKU           *string                        `json:"sku" validate:"omitempty,min=1,max=50"`
}

func (r *UpdateProductRequest) toInput() *usecase.UpdateProductInput {
	return &usecase.UpdateProductInput{
		Name:          r.Name,
		Category:      r.Category,
		PetType:       r.PetType,
		Brand:         r.Brand,
		Price:         r.Price,
		OriginalPrice: r.OriginalPrice.Optional(),
		Image:         r.Image,
		Images:        r.Images,
		Description:   r.Description,
		Features:      r.Features,
		Weight:        r.Weight,
		Dimensions:    r.Dimensions.Optional(),
		Featured:      r.Featured,
		StockCount:    r.StockCount,
		SKU:           r.SKU,
	}
}

type productCreatedResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

type productUpdatedResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Dashboard returns store-wide counters and the latest orders
func (h *AdminHandler) Dashboard(c echo.Context) error {
	out, err := h.adminUC.Dashboard(c.Request().Context())
	if err != nil {
		return err
	}

	recent := make([]*recentOrderPayload, len(out.RecentOrders))
	for i, order := range out.RecentOrders {
		name, email := customer(order)
		recent[i] = &recentOrderPayload{
			ID:        order.ID,
			Customer:  name,
			Email:     email,
			Total:     money(order.Total),
			Status:    order.Status,
			ItemCount: len(order.Items),
			CreatedAt: order.CreatedAt,
		}
	}

	return response.OK(c, dashboardResponse{
		Stats: dashboardStatsPayload{
			TotalProducts: out.Stats.TotalProducts,
			TotalOrders:   out.Stats.TotalOrders,
			TotalUsers:    out.Stats.TotalUsers,
			TotalRevenue:  money(out.Stats.TotalRevenue),
		},
		RecentOrders: recent,
	})
}

// ListOrders handles GET /admin/orders?status=&page=&limit=
func (h *AdminHandler) ListOrders(c echo.Context) error {
	input := &usecase.ListOrdersInput{
		Page:  queryInt(c, "page"),
		Limit: queryInt(c, "limit"),
	}
	if status := strings.ToLower(strings.TrimSpace(c.QueryParam("status"))); status != "" {
		s := entity.OrderStatus(status)
		input.Status = &s
	}

	page, err := h.adminUC.ListOrders(c.Request().Context(), input)
	if err != nil {
		return err
	}

	orders := make([]*adminOrderPayload, len(page.Orders))
	for i, order := range page.Orders {
		orders[i] = newAdminOrderPayload(order)
	}

	return response.OK(c, adminOrderListResponse{
		Orders:     orders,
		Total:      page.Total,
		Page:       page.Page,
		TotalPages: page.TotalPages,
	})
}

// UpdateOrderStatus handles PATCH /admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c echo.Context) error {
	orderID, err := uuidParam(c, "id", domainerrors.ErrOrderNotFound)
	if err != nil {
		return err
	}

	var req UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.adminUC.UpdateOrderStatus(c.Request().Context(), orderID, req.Status)
	if err != nil {
		return err
	}

	return response.OK(c, orderStatusResponse{ID: order.ID, Status: order.Status})
}

// CreateProduct handles POST /admin/products
func (h *AdminHandler) CreateProduct(c echo.Context) error {
	var req usecase.CreateProductInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.adminUC.CreateProduct(c.Request().Context(), &req)
	if err != nil {
		return err
	}

	return response.Created(c, productCreatedResponse{ID: product.ID, Name: product.Name, Slug: product.Slug})
}

// UpdateProduct handles PATCH /admin/products/:id
func (h *AdminHandler) UpdateProduct(c echo.Context) error {
	productID, err := uuidParam(c, "id", domainerrors.ErrProductNotFound)
	if err != nil {
		return err
	}

	var req UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.adminUC.UpdateProduct(c.Request().Context(), productID, req.toInput())
	if err != nil {
		return err
	}

	return response.OK(c, productUpdatedResponse{ID: product.ID, Name: product.Name})
}

// DeleteProduct handles DELETE /admin/products/:id
func (h *AdminHandler) DeleteProduct(c echo.Context) error {
	productID, err := uuidParam(c, "id", domainerrors.ErrProductNotFound)
	if err != nil {
		return err
	}

	if err := h.adminUC.DeleteProduct(c.Request().Context(), productID); err != nil {
		return err
	}

	return response.OK(c, messageResponse{Message: "Product deleted."})
}

// Inventory handles GET /admin/inventory
func (h *AdminHandler) Inventory(c echo.Context) error {
	items, err := h.adminUC.Inventory(c.Request().Context())
	if err != nil {
		return err
	}

	payload := make([]*inventoryPayload, len(items))
	for i, item := range items {
		payload[i] = &inventoryPayload{
			ID:         item.ID,
			Name:       item.Name,
			SKU:        item.SKU,
			Category:   item.Category,
			Brand:      item.Brand,
			Price:      money(item.Price),
			StockCount: item.StockCount,
			InStock:    item.InStock,
		}
	}

	return response.OK(c, payload)
}
