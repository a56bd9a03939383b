// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"pawparadise/internal/delivery/api/middleware"
	"pawparadise/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	HealthHandler     *handler.HealthHandler
	AuthHandler       *handler.AuthHandler
	ProductHandler    *handler.ProductHandler
	OrderHandler      *handler.OrderHandler
	ReviewHandler     *handler.ReviewHandler
	StorefrontHandler *handler.StorefrontHandler
	AdminHandler      *handler.AdminHandler
	AuthMiddleware    *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	healthHandler     *handler.HealthHandler
	authHandler       *handler.AuthHandler
	productHandler    *handler.ProductHandler
	orderHandler      *handler.OrderHandler
	reviewHandler     *handler.ReviewHandler
	storefrontHandler *handler.StorefrontHandler
	adminHandler      *handler.AdminHandler
	authMiddleware    *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		healthHandler:     params.HealthHandler,
		authHandler:       params.AuthHandler,
		productHandler:    params.ProductHandler,
		orderHandler:      params.OrderHandler,
		reviewHandler:     params.ReviewHandler,
		storefrontHandler: params.StorefrontHandler,
		adminHandler:      params.AdminHandler,
		authMiddleware:    params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")

	api.GET("/health", r.healthHandler.Health)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", r.authHandler.Signup)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.GET("/me", r.authHandler.Me, r.authMiddleware.Authenticate)
	}

	// Static segments win over :id in echo, so /featured is never read as a slug.
	productsGroup := api.Group("/products")
	{
		productsGroup.GET("", r.productHandler.ListProducts)
		productsGroup.GET("/featured", r.productHandler.FeaturedProducts)
		productsGroup.GET("/brands", r.productHandler.Brands)
		productsGroup.GET("/categories", r.productHandler.Categories)
		productsGroup.GET("/price-range", r.productHandler.PriceRange)
		productsGroup.GET("/:id", r.productHandler.GetProduct)
		productsGroup.GET("/:id/related", r.productHandler.RelatedProducts)
	}

	ordersGroup := api.Group("/orders")
	ordersGroup.Use(r.authMiddleware.Authenticate)
	{
		ordersGroup.POST("", r.orderHandler.PlaceOrder)
		ordersGroup.GET("", r.orderHandler.ListMyOrders)
		ordersGroup.GET("/:id", r.orderHandler.GetOrder)
		ordersGroup.GET("/:id/qr", r.orderHandler.OrderQR)
	}

	reviewsGroup := api.Group("/reviews")
	{
		reviewsGroup.GET("/:productId", r.reviewHandler.ListReviews)
		reviewsGroup.POST("/:productId", r.reviewHandler.CreateReview, r.authMiddleware.Authenticate)
	}

	api.POST("/promo/validate", r.storefrontHandler.ValidatePromo)
	api.GET("/testimonials", r.storefrontHandler.ListTestimonials)

	// Admin routes require a valid token and the admin role
	adminGroup := api.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireAdmin)
	{
		adminGroup.GET("/dashboard", r.adminHandler.Dashboard)
		adminGroup.GET("/orders", r.adminHandler.ListOrders)
		adminGroup.PATCH("/orders/:id/status", r.adminHandler.UpdateOrderStatus)
		adminGroup.POST("/products", r.adminHandler.CreateProduct)
		adminGroup.PATCH("/products/:id", r.adminHandler.UpdateProduct)
		adminGroup.DELETE("/products/:id", r.adminHandler.DeleteProduct)
		adminGroup.GET("/inventory", r.adminHandler.Inventory)
	}
}
