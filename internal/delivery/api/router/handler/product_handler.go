package handler

import (
	"strings"

	"pawparadise/internal/delivery/api/response"
	"pawparadise/internal/domain/entity"
	domainerrors "pawparadise/internal/domain/errors"
	"pawparadise/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ProductHandlerParams holds dependencies for ProductHandler, injected by Fx.
type ProductHandlerParams struct {
	fx.In

	CatalogUC usecase.CatalogUsecase
}

// ProductHandler serves the public catalog
type ProductHandler struct {
	catalogUC usecase.CatalogUsecase
}

// NewProductHandler is the constructor for ProductHandler
func NewProductHandler(params ProductHandlerParams) *ProductHandler {
	return &ProductHandler{catalogUC: params.CatalogUC}
}

type productListResponse struct {
	Products   []*productPayload `json:"products"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	TotalPages int               `json:"totalPages"`
}

type priceRangeResponse struct {
	Min money `json:"min"`
	Max money `json:"max"`
}

// ListProducts handles GET /products with filters, sorting and pagination
func (h *ProductHandler) ListProducts(c echo.Context) error {
	minPrice, err := queryDecimal(c, "minPrice")
	if err != nil {
		return err
	}
	maxPrice, err := queryDecimal(c, "maxPrice")
	if err != nil {
		return err
	}

	var categories []entity.Category
	for _, category := range queryList(c, "category") {
		categories = append(categories, entity.Category(category))
	}

	input := &usecase.ListProductsInput{
		Search:     strings.TrimSpace(c.QueryParam("search")),
		Categories: categories,
		PetType:    entity.PetType(strings.ToLower(strings.TrimSpace(c.QueryParam("petType")))),
		Brand:      strings.TrimSpace(c.QueryParam("brand")),
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
		Featured:   c.QueryParam("featured") == "true",
		Sort:       c.QueryParam("sort"),
		Page:       queryInt(c, "page"),
		Limit:      queryInt(c, "limit"),
	}

	page, err := h.catalogUC.ListProducts(c.Request().Context(), input)
	if err != nil {
		return err
	}

	return response.OK(c, productListResponse{
		Products:   newProductPayloads(page.Products),
		Total:      page.Total,
		Page:       page.Page,
		TotalPages: page.TotalPages,
	})
}

// FeaturedProducts handles GET /products/featured
func (h *ProductHandler) FeaturedProducts(c echo.Context) error {
	products, err := h.catalogUC.FeaturedProducts(c.Request().Context())
	if err != nil {
		return err
	}

	return response.OK(c, newProductPayloads(products))
}

func (h *ProductHandler) Brands(c echo.Context) error {
	brands, err := h.catalogUC.Brands(c.Request().Context())
	if err != nil {
		return err
	}

	return response.OK(c, nonNil(brands))
}

func (h *ProductHandler) Categories(c echo.Context) error {
	categories, err := h.catalogUC.Categories(c.Request().Context())
	if err != nil {
		return err
	}
	if categories == nil {
		categories = []entity.Category{}
	}

	return response.OK(c, categories)
}

func (h *ProductHandler) PriceRange(c echo.Context) error {
	priceRange, err := h.catalogUC.PriceRange(c.Request().Context())
	if err != nil {
		return err
	}

	return response.OK(c, priceRangeResponse{Min: money(priceRange.Min), Max: money(priceRange.Max)})
}

// GetProduct handles GET /products/:id, where id may also be a slug
func (h *ProductHandler) GetProduct(c echo.Context) error {
	product, err := h.catalogUC.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return response.OK(c, newProductPayload(product))
}

// RelatedProducts handles GET /products/:id/related
func (h *ProductHandler) RelatedProducts(c echo.Context) error {
	productID, err := uuidParam(c, "id", domainerrors.ErrProductNotFound)
	if err != nil {
		return err
	}

	products, err := h.catalogUC.RelatedProducts(c.Request().Context(), productID)
	if err != nil {
		return err
	}

	return response.OK(c, newProductPayloads(products))
}
