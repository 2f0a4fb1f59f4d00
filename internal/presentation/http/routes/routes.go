package routes

import (
	"net/http"
	"time"

	"github.com/FRANKLIN09020/smart-billing/internal/config"
	domainRepo "github.com/FRANKLIN09020/smart-billing/internal/domain/repository"
	"github.com/FRANKLIN09020/smart-billing/internal/presentation/http/handler"
	"github.com/FRANKLIN09020/smart-billing/internal/presentation/http/middleware"
	"github.com/FRANKLIN09020/smart-billing/pkg/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth    *handler.AuthHandler
	Catalog *handler.CatalogHandler
	Cart    *handler.CartHandler
	Bill    *handler.BillHandler
	Printer *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.OperatorRateLimiter
	Log             *zap.Logger
}

// NewRateLimiter builds the per-operator limiter from the configured request
// budget (RATE_LIMIT_REQUESTS per RATE_LIMIT_DURATION seconds).
func NewRateLimiter(cfg config.RateLimitConfig) *middleware.OperatorRateLimiter {
	rl := middleware.DefaultRateLimiterConfig()
	if cfg.Requests > 0 && cfg.Duration > 0 {
		rl.RequestsPerSecond = float64(cfg.Requests) / float64(cfg.Duration)
		rl.BurstSize = cfg.Requests
	}
	return middleware.NewOperatorRateLimiter(rl)
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if deps.RateLimiter == nil {
		deps.RateLimiter = NewRateLimiter(deps.Cfg.RateLimit)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
			"time":    time.Now().UTC().Format(time.RFC3339),
			"limiter": deps.RateLimiter.Stats(),
		})
	})

	v1 := router.Group("/api/v1")
	{
		// Public routes
		auth := v1.Group("/auth")
		auth.Use(deps.RateLimiter.Middleware())
		auth.POST("/login", h.Auth.Login)

		// Protected routes
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(deps.RateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	protected.GET("/auth/me", h.Auth.Me)

	registerProductRoutes(protected, h)
	registerCartRoutes(protected, h)
	registerBillRoutes(protected, h, deps)
	registerPrinterRoutes(protected, h)

	protected.GET("/snapshot", h.Bill.Snapshot)
}

func registerProductRoutes(rg *gin.RouterGroup, h *Handlers) {
	products := rg.Group("/products")
	{
		products.GET("", h.Catalog.List)
		products.GET("/categories", h.Catalog.Categories)
		products.GET("/:id", h.Catalog.Get)
		products.POST("", h.Catalog.Create)
		products.POST("/:id/restock", h.Catalog.Restock)
	}
}

func registerCartRoutes(rg *gin.RouterGroup, h *Handlers) {
	cart := rg.Group("/cart")
	{
		cart.GET("", h.Cart.Get)
		cart.DELETE("", h.Cart.Clear)
		cart.POST("/items", h.Cart.AddItem)
		cart.PUT("/items/:id/quantity", h.Cart.SetQuantity)
		cart.PUT("/items/:id/price", h.Cart.SetPrice)
		cart.DELETE("/items/:id", h.Cart.RemoveItem)
		cart.PUT("/discount", h.Cart.SetDiscount)
		cart.PUT("/customer", h.Cart.SetCustomer)
		cart.PUT("/payment-method", h.Cart.SetPaymentMethod)
	}
}

func registerBillRoutes(rg *gin.RouterGroup, h *Handlers, deps *Deps) {
	bills := rg.Group("/bills")
	{
		bills.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
			TTL:  deps.Cfg.Billing.IdempotencyTTL,
			Log:  deps.Log,
		}), h.Bill.Generate)
		bills.GET("", h.Bill.List)
		bills.GET("/export", h.Bill.Export)
		bills.GET("/:number", h.Bill.Get)
		bills.POST("/:number/print", h.Printer.PrintBill)
	}
}

func registerPrinterRoutes(rg *gin.RouterGroup, h *Handlers) {
	printer := rg.Group("/printer")
	{
		printer.GET("/status", h.Printer.GetStatus)
		printer.POST("/test", h.Printer.TestPrint)
	}
}
