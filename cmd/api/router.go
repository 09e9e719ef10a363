package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pharmastore-backend/internal/shared/middleware"
	"pharmastore-backend/internal/shared/response"
	"pharmastore-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	// Cart session cookie configuration
	sessionConfig := middleware.DefaultSessionConfig()
	sessionConfig.CookieName = c.Config.Cart.SessionCookieName
	sessionConfig.CookieSecure = c.Config.Cart.CookieSecure

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupProductRoutes(v1, c)
		setupCartRoutes(v1, c, sessionConfig)
	}

	return router
}

// ========================================
// PRODUCT ROUTES
// ========================================
func setupProductRoutes(v1 *gin.RouterGroup, c *container.Container) {
	products := v1.Group("/products")
	{
		products.GET("/:id", c.ProductHandler.GetProduct)
		products.GET("/:id/stock", c.ProductHandler.GetStock)
	}
}

// ========================================
// CART ROUTES
// ========================================
// Every cart route runs behind CartSession so an anonymous visitor
// gets a cart on first touch.
func setupCartRoutes(v1 *gin.RouterGroup, c *container.Container, sessionConfig middleware.SessionConfig) {
	cart := v1.Group("/me/cart")
	cart.Use(middleware.CartSession(sessionConfig))
	{
		cart.GET("", c.CartHandler.GetCart)
		cart.POST("/items", c.CartHandler.AddItem)
		cart.PUT("/items/:line_id", c.CartHandler.UpdateQuantity)
		cart.DELETE("/items/:line_id", c.CartHandler.RemoveItem)
		cart.DELETE("", c.CartHandler.ClearCart)
		cart.POST("/checkout", c.CartHandler.Checkout)
	}
}

// healthCheckHandler reports liveness of the server and its backing
// services
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checks := gin.H{
			"database": "ok",
			"redis":    "ok",
		}
		healthy := true

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			checks["database"] = err.Error()
			healthy = false
		}
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			checks["redis"] = err.Error()
			healthy = false
		}

		status := http.StatusOK
		overall := "healthy"
		if !healthy {
			status = http.StatusServiceUnavailable
			overall = "degraded"
		}

		response.Success(ctx, status, gin.H{
			"status":    overall,
			"version":   c.Config.App.Version,
			"timestamp": time.Now().UTC(),
			"checks":    checks,
		})
	}
}
