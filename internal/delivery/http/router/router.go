// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"vmarket/internal/delivery/http/middleware"
	"vmarket/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	CatalogHandler      *handler.CatalogHandler
	CartHandler         *handler.CartHandler
	CheckoutHandler     *handler.CheckoutHandler
	OrderHandler        *handler.OrderHandler
	ProfileHandler      *handler.ProfileHandler
	AdminProductHandler *handler.AdminProductHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	catalogHandler      *handler.CatalogHandler
	cartHandler         *handler.CartHandler
	checkoutHandler     *handler.CheckoutHandler
	orderHandler        *handler.OrderHandler
	profileHandler      *handler.ProfileHandler
	adminProductHandler *handler.AdminProductHandler
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		catalogHandler:      params.CatalogHandler,
		cartHandler:         params.CartHandler,
		checkoutHandler:     params.CheckoutHandler,
		orderHandler:        params.OrderHandler,
		profileHandler:      params.ProfileHandler,
		adminProductHandler: params.AdminProductHandler,
		authMiddleware:      params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Public catalog routes, no authentication required
	catalogGroup := e.Group("/catalog")
	{
		catalogGroup.GET("/products", r.catalogHandler.ListProducts)
		catalogGroup.GET("/products/search", r.catalogHandler.SearchProducts)
		catalogGroup.GET("/products/:productId", r.catalogHandler.GetProduct)
	}

	// Cart routes that require authentication
	cartGroup := e.Group("/cart")
	cartGroup.Use(r.authMiddleware.Authenticate)
	{
		cartGroup.GET("", r.cartHandler.GetCart)
		cartGroup.POST("/lines", r.cartHandler.AddToCart)
		cartGroup.PUT("/lines/:productId", r.cartHandler.SetQuantity)
		cartGroup.DELETE("/lines/:productId", r.cartHandler.RemoveLine)
		cartGroup.DELETE("", r.cartHandler.ClearCart)
	}

	// Checkout routes that require authentication
	checkoutGroup := e.Group("/checkout")
	checkoutGroup.Use(r.authMiddleware.Authenticate)
	{
		checkoutGroup.GET("/review", r.checkoutHandler.Review)
		checkoutGroup.POST("/commit", r.checkoutHandler.Commit)
	}

	// Order routes that require authentication
	orderGroup := e.Group("/orders")
	orderGroup.Use(r.authMiddleware.Authenticate)
	{
		orderGroup.GET("", r.orderHandler.GetMyOrders)
		orderGroup.GET("/:reference", r.orderHandler.GetOrder)
		orderGroup.GET("/:reference/qr", r.orderHandler.GenerateOrderQR)
	}

	// Profile routes that require authentication
	profileGroup := e.Group("/profile")
	profileGroup.Use(r.authMiddleware.Authenticate)
	{
		profileGroup.GET("", r.profileHandler.GetProfile)
		profileGroup.PUT("", r.profileHandler.SaveProfile)
	}

	// Back-office routes that require authentication and the "admin" role
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole(middleware.RoleAdmin))
	{
		adminGroup.GET("/products", r.adminProductHandler.ListProducts)
		adminGroup.GET("/products/search", r.adminProductHandler.SearchProducts)
		adminGroup.POST("/products", r.adminProductHandler.CreateProduct)
		adminGroup.PUT("/products/:productId", r.adminProductHandler.UpdateProduct)
		adminGroup.PATCH("/products/:productId/active", r.adminProductHandler.SetActive)
		adminGroup.DELETE("/products/:productId", r.adminProductHandler.DeleteProduct)

		adminGroup.GET("/orders", r.orderHandler.ListAllOrders)
		adminGroup.PATCH("/orders/:reference/status", r.orderHandler.UpdateStatus)
	}
}
