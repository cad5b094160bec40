package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mwinzi/freshmart-api/internal/application/search"
	"github.com/mwinzi/freshmart-api/internal/application/service"
	"github.com/mwinzi/freshmart-api/internal/config"
	"github.com/mwinzi/freshmart-api/internal/infrastructure/database"
	"github.com/mwinzi/freshmart-api/internal/infrastructure/repository"
	"github.com/mwinzi/freshmart-api/internal/presentation/http/handler"
	"github.com/mwinzi/freshmart-api/internal/presentation/http/routes"
	"github.com/mwinzi/freshmart-api/pkg/artifact"
	"github.com/mwinzi/freshmart-api/pkg/scale"
	"github.com/mwinzi/freshmart-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize weighing scale
	weighingScale, err := scale.NewScaleFromConfig(
		cfg.Scale.Type,
		cfg.Scale.Device,
		cfg.Scale.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize weighing scale: %v", err)
		weighingScale = scale.NewNullScale()
	}
	defer weighingScale.Close()

	// Artifact store for invoice previews
	artifacts := artifact.NewStore()

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	productService := service.NewProductService(productRepo)
	orderService := service.NewOrderService(orderRepo, productRepo, cfg.Invoice)
	draftService := service.NewDraftService(productRepo, orderService, weighingScale, artifacts, cfg.Invoice)
	scaleService := service.NewScaleService(weighingScale, cfg.Scale.Type)

	// Live-search session manager
	searchManager := search.NewManager()
	debounce := time.Duration(cfg.Search.DebounceMS) * time.Millisecond

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Product:  handler.NewProductHandler(productService),
		Order:    handler.NewOrderHandler(orderService),
		Draft:    handler.NewDraftHandler(draftService),
		Search:   handler.NewSearchHandler(searchManager, orderService, debounce),
		Scale:    handler.NewScaleHandler(scaleService),
		Artifact: handler.NewArtifactHandler(artifacts),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
