// Package routes defines HTTP routes for the store manager API.
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/oma0256/store-manager-api/internal/handlers"
	"github.com/oma0256/store-manager-api/internal/middleware"
	"github.com/oma0256/store-manager-api/internal/repository"
	"github.com/oma0256/store-manager-api/internal/service"
)

// Handlers bundles every handler the route table needs.
type Handlers struct {
	Auth     *handlers.AuthHandler
	Product  *handlers.ProductHandler
	Category *handlers.CategoryHandler
	Sale     *handlers.SaleHandler
	User     *handlers.UserHandler
	Health   *handlers.HealthHandler
}

// Setup configures all HTTP routes for the application.
func Setup(router *gin.Engine, h Handlers, jwtService service.JWTService, userRepo repository.UserRepository, redisClient *redis.Client) {
	router.Use(middleware.Metrics())

	router.GET("/health", h.Health.Check)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v2 := router.Group("/api/v2")
	{
		v2.POST("/auth/login", h.Auth.Login)
		v2.POST("/auth/refresh", h.Auth.Refresh)
	}

	authed := v2.Group("")
	authed.Use(middleware.RequireAuth(jwtService, userRepo, redisClient))
	{
		authed.POST("/auth/signup", h.Auth.Signup)
		authed.POST("/auth/logout", h.Auth.Logout)

		authed.GET("/products", h.Product.List)
		authed.POST("/products", h.Product.Create)
		authed.GET("/products/:id", h.Product.Get)
		authed.PUT("/products/:id", h.Product.Update)
		authed.DELETE("/products/:id", h.Product.Delete)

		authed.GET("/categories", h.Category.List)
		authed.POST("/categories", h.Category.Create)
		authed.PUT("/categories/:id", h.Category.Update)
		authed.DELETE("/categories/:id", h.Category.Delete)

		authed.GET("/sales", h.Sale.List)
		authed.POST("/sales", h.Sale.Create)
		authed.GET("/sales/:id", h.Sale.Get)
		authed.PUT("/sales/:id", h.Sale.Revert)

		authed.GET("/users", h.User.List)
		authed.GET("/users/:id", h.User.Get)
		authed.GET("/users/:id/toggle-rights", h.User.ToggleRights)
	}
}
