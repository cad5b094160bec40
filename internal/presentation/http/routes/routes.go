package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mwinzi/freshmart-api/internal/config"
	domainRepo "github.com/mwinzi/freshmart-api/internal/domain/repository"
	"github.com/mwinzi/freshmart-api/internal/presentation/http/handler"
	"github.com/mwinzi/freshmart-api/internal/presentation/http/middleware"
	"github.com/mwinzi/freshmart-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Product  *handler.ProductHandler
	Order    *handler.OrderHandler
	Draft    *handler.DraftHandler
	Search   *handler.SearchHandler
	Scale    *handler.ScaleHandler
	Artifact *handler.ArtifactHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-client rate limiter
		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	registerProductRoutes(protected, h)
	registerOrderRoutes(protected, h)
	registerDraftRoutes(protected, h, deps)
	registerSearchRoutes(protected, h)
	registerScaleRoutes(protected, h)

	// Previewable artifacts (invoice PDFs) by token
	protected.GET("/artifacts/:token", h.Artifact.Get)
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}
}

func registerOrderRoutes(protected *gin.RouterGroup, h *Handlers) {
	orders := protected.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.GET("/export", h.Order.Export)
		orders.GET("/:id", h.Order.Get)
		orders.GET("/:id/invoice.pdf", h.Order.InvoicePDF)
		orders.DELETE("/:id", h.Order.Delete)
	}
}

func registerDraftRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	drafts := protected.Group("/drafts")
	{
		drafts.POST("", h.Draft.Create)
		drafts.GET("/:id", h.Draft.Get)
		drafts.DELETE("/:id", h.Draft.Delete)
		drafts.PUT("/:id/customer", h.Draft.UpdateCustomer)
		drafts.PUT("/:id/entry", h.Draft.UpdateEntry)
		drafts.POST("/:id/entry/weigh", h.Draft.Weigh)
		drafts.POST("/:id/items", h.Draft.AddItem)
		drafts.DELETE("/:id/items/:index", h.Draft.RemoveItem)
		drafts.GET("/:id/invoice.pdf", h.Draft.InvoicePDF)
		// Submission uses idempotency middleware so a retried request
		// cannot create a duplicate order.
		drafts.POST("/:id/submit", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Draft.Submit)
	}
}

func registerSearchRoutes(protected *gin.RouterGroup, h *Handlers) {
	searchGroup := protected.Group("/search/sessions")
	{
		searchGroup.POST("", h.Search.Create)
		searchGroup.PUT("/:id/query", h.Search.Keystroke)
		searchGroup.PUT("/:id/window", h.Search.SetWindow)
		searchGroup.GET("/:id/stream", h.Search.Stream)
		searchGroup.DELETE("/:id", h.Search.Delete)
	}
}

func registerScaleRoutes(protected *gin.RouterGroup, h *Handlers) {
	scaleGroup := protected.Group("/scale")
	{
		scaleGroup.GET("/status", h.Scale.Status)
		scaleGroup.GET("/weight", h.Scale.Weight)
	}
}
