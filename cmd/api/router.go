package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/shared/middleware"
	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
		middleware.ClientCountry(),
	)

	jwtSecret := c.Config.JWT.Secret

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		v1.GET("/products/:slug", c.CatalogHandler.GetProduct)

		cart := v1.Group("/cart")
		{
			cart.GET("", middleware.OptionalAuthMiddleware(jwtSecret), c.CartHandler.GetCart)
			cart.POST("/price", c.CartHandler.PriceGuestCart)
			cart.POST("/validate", middleware.OptionalAuthMiddleware(jwtSecret), c.CartHandler.ValidateCart)

			cart.POST("/items", middleware.AuthMiddleware(jwtSecret), c.CartHandler.AddItem)
			cart.PUT("/items", middleware.AuthMiddleware(jwtSecret), c.CartHandler.UpdateQuantity)
			cart.DELETE("/items/:slug", middleware.AuthMiddleware(jwtSecret), c.CartHandler.RemoveItem)
			cart.GET("/items/:slug", middleware.AuthMiddleware(jwtSecret), c.CartHandler.GetItem)
			cart.GET("/items/:slug/quantity", middleware.AuthMiddleware(jwtSecret), c.CartHandler.GetQuantity)
			cart.POST("/merge", middleware.AuthMiddleware(jwtSecret), c.CartHandler.MergeGuestCart)
		}

		orders := v1.Group("/orders", middleware.AuthMiddleware(jwtSecret))
		{
			orders.POST("", c.OrderHandler.CreateOrder)
			orders.GET("", c.OrderHandler.ListOrders)
			orders.GET("/:id", c.OrderHandler.GetOrder)
		}
	}

	return router
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		checks := gin.H{"database": "ok", "cache": "ok"}

		if err := c.DB.HealthCheck(checkCtx); err != nil {
			checks["database"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		if err := c.Cache.Ping(checkCtx); err != nil {
			checks["cache"] = err.Error()
			status = http.StatusServiceUnavailable
		}

		if status != http.StatusOK {
			response.ErrorWithDetails(ctx, status, "UNHEALTHY", "Service degraded", checks)
			return
		}
		response.Success(ctx, status, gin.H{
			"status":  "healthy",
			"version": c.Config.App.Version,
			"checks":  checks,
		})
	}
}
