package handler

import (
	"pawparadise/internal/delivery/api/response"
	"pawparadise/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// StorefrontHandlerParams holds dependencies for StorefrontHandler, injected by Fx.
type StorefrontHandlerParams struct {
	fx.In

	PromoUC       usecase.PromoUsecase
	TestimonialUC usecase.TestimonialUsecase
}

// StorefrontHandler serves promo validation and testimonials
type StorefrontHandler struct {
	promoUC       usecase.PromoUsecase
	testimonialUC usecase.TestimonialUsecase
}

// NewStorefrontHandler is the constructor for StorefrontHandler
func NewStorefrontHandler(params StorefrontHandlerParams) *StorefrontHandler {
	return &StorefrontHandler{
		promoUC:       params.PromoUC,
		testimonialUC: params.TestimonialUC,
	}
}

type promoResponse struct {
	Code            string `json:"code"`
	DiscountPercent int    `json:"discountPercent"`
}

// ValidatePromo handles POST /promo/validate
func (h *StorefrontHandler) ValidatePromo(c echo.Context) error {
	var req usecase.ValidatePromoInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid promo input")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	promo, err := h.promoUC.ValidatePromoCode(c.Request().Context(), req.Code)
	if err != nil {
		return err
	}

	return response.OK(c, promoResponse{Code: promo.Code, DiscountPercent: promo.DiscountPercent})
}

// ListTestimonials handles GET /testimonials
func (h *StorefrontHandler) ListTestimonials(c echo.Context) error {
	testimonials, err := h.testimonialUC.ListTestimonials(c.Request().Context())
	if err != nil {
		return err
	}

	payload := make([]*testimonialPayload, len(testimonials))
	for i, t := range testimonials {
		payload[i] = &testimonialPayload{
			ID:          t.ID,
			Name:        t.Name,
			Avatar:      t.AvatarURL,
			Comment:     t.Comment,
			Rating:      t.Rating,
			ProductType: t.ProductType,
		}
	}

	return response.OK(c, payload)
}
