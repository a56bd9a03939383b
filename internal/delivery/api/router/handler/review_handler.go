package handler

import (
	"pawparadise/internal/delivery/api/response"
	domainerrors "pawparadise/internal/domain/errors"
	"pawparadise/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ReviewHandlerParams holds dependencies for ReviewHandler, injected by Fx.
type ReviewHandlerParams struct {
	fx.In

	ReviewUC usecase.ReviewUsecase
}

// ReviewHandler serves product reviews
type ReviewHandler struct {
	reviewUC usecase.ReviewUsecase
}

// NewReviewHandler is the constructor for ReviewHandler
func NewReviewHandler(params ReviewHandlerParams) *ReviewHandler {
	return &ReviewHandler{reviewUC: params.ReviewUC}
}

// ListReviews handles GET /reviews/:productId. A malformed id has no reviews.
func (h *ReviewHandler) ListReviews(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		return response.OK(c, []*reviewPayload{})
	}

	reviews, err := h.reviewUC.ListReviews(c.Request().Context(), productID)
	if err != nil {
		return err
	}

	payload := make([]*reviewPayload, len(reviews))
	for i, review := range reviews {
		payload[i] = newReviewPayload(review)
	}

	return response.OK(c, payload)
}

// CreateReview handles POST /reviews/:productId
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	productID, err := uuidParam(c, "productId", domainerrors.ErrProductNotFound)
	if err != nil {
		return err
	}

	var req usecase.CreateReviewInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid review input")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	review, err := h.reviewUC.CreateReview(c.Request().Context(), productID, p.UserID, &req)
	if err != nil {
		return err
	}

	return response.Created(c, newReviewPayload(review))
}
