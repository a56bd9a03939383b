package handler

import (
	"log/slog"
	"net/http"

	"pawparadise/internal/delivery/api/response"
	domainerrors "pawparadise/internal/domain/errors"
	"pawparadise/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC usecase.OrderUsecase
	Logger  *slog.Logger
}

// OrderHandler serves checkout and the customer's order history
type OrderHandler struct {
	orderUC usecase.OrderUsecase
	logger  *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler
func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{
		orderUC: params.OrderUC,
		logger:  params.Logger,
	}
}

// PlaceOrder handles checkout
func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var req usecase.PlaceOrderInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.orderUC.PlaceOrder(c.Request().Context(), p.UserID, &req)
	if err != nil {
		return err
	}

	return response.Created(c, newOrderPayload(order))
}

// ListMyOrders returns the caller's orders, newest first
func (h *OrderHandler) ListMyOrders(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	orders, err := h.orderUC.ListMyOrders(c.Request().Context(), p.UserID)
	if err != nil {
		return err
	}

	payload := make([]*orderPayload, len(orders))
	for i, order := range orders {
		payload[i] = newOrderPayload(order)
	}

	return response.OK(c, payload)
}

// GetOrder returns one order to its owner or an admin
func (h *OrderHandler) GetOrder(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	orderID, err := uuidParam(c, "id", domainerrors.ErrOrderNotFound)
	if err != nil {
		return err
	}

	order, err := h.orderUC.GetOrder(c.Request().Context(), p, orderID)
	if err != nil {
		return err
	}

	return response.OK(c, newOrderPayload(order))
}

// OrderQR streams the order's QR code as a PNG
func (h *OrderHandler) OrderQR(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	orderID, err := uuidParam(c, "id", domainerrors.ErrOrderNotFound)
	if err != nil {
		return err
	}

	png, err := h.orderUC.OrderQR(c.Request().Context(), p, orderID)
	if err != nil {
		return err
	}

	c.Response().Header().Set("Cache-Control", "private, max-age=300")

	return c.Blob(http.StatusOK, "image/png", png)
}
