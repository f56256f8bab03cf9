// Package main is the entry point for the store manager API.
package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/oma0256/store-manager-api/internal/config"
	"github.com/oma0256/store-manager-api/internal/database"
	"github.com/oma0256/store-manager-api/internal/handlers"
	"github.com/oma0256/store-manager-api/internal/repository"
	"github.com/oma0256/store-manager-api/internal/routes"
	"github.com/oma0256/store-manager-api/internal/service"
	"github.com/oma0256/store-manager-api/pkg/logger"
	"github.com/oma0256/store-manager-api/pkg/redis"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logging
	log := logger.Init(cfg.Environment, cfg.LogFile)
	defer func() { _ = log.Sync() }()

	// Initialize database
	db, err := database.Connect(database.PostgresConfig{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
	})
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate schema", zap.Error(err))
	}
	if err := database.SeedAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatal("Failed to seed store owner", zap.Error(err))
	}

	// Initialize Redis
	redisClient, err := redis.NewClient(redis.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
	})
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)

	// Initialize services
	jwtService := service.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry)
	authService := service.NewAuthService(userRepo, jwtService, redisClient)
	catalogService := service.NewCatalogService(categoryRepo, productRepo)
	saleService := service.NewSaleService(saleRepo)
	userService := service.NewUserService(userRepo, saleRepo)

	// Setup router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	routes.Setup(router, routes.Handlers{
		Auth:     handlers.NewAuthHandler(authService),
		Product:  handlers.NewProductHandler(catalogService),
		Category: handlers.NewCategoryHandler(catalogService),
		Sale:     handlers.NewSaleHandler(saleService),
		User:     handlers.NewUserHandler(userService),
		Health:   handlers.NewHealthHandler(),
	}, jwtService, userRepo, redisClient)

	// Start server
	log.Info("Starting store manager API", zap.String("port", cfg.Port))
	if err := router.Run(fmt.Sprintf(":%s", cfg.Port)); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
