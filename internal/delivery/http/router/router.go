// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"bazaar/internal/delivery/http/middleware"
	"bazaar/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler *handler.AccountHandler
	CartHandler    *handler.CartHandler
	ItemHandler    *handler.ItemHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler *handler.AccountHandler
	cartHandler    *handler.CartHandler
	itemHandler    *handler.ItemHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler: params.AccountHandler,
		cartHandler:    params.CartHandler,
		itemHandler:    params.ItemHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// Public auth routes
	api.POST("/signup", r.accountHandler.Signup)
	api.POST("/login", r.accountHandler.Login)

	// Public catalog routes
	api.GET("/items", r.itemHandler.ListItems)
	api.GET("/items/:id", r.itemHandler.GetItem)
	api.POST("/items", r.itemHandler.CreateItem)
	api.PUT("/items/:id", r.itemHandler.UpdateItem)
	api.DELETE("/items/:id", r.itemHandler.DeleteItem)

	// Routes that require an authenticated session
	api.GET("/user", r.accountHandler.GetProfile, r.authMiddleware.Authenticate)

	cartGroup := api.Group("/cart")
	cartGroup.Use(r.authMiddleware.Authenticate) // Apply session authentication middleware
	{
		cartGroup.POST("", r.cartHandler.AddItem)
		cartGroup.GET("", r.cartHandler.ListCart)
		cartGroup.DELETE("/:itemId", r.cartHandler.RemoveItem)
	}
}
