package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nimeshjn/vendura-api/internal/config"
	domainRepo "github.com/nimeshjn/vendura-api/internal/domain/repository"
	"github.com/nimeshjn/vendura-api/internal/presentation/http/handler"
	"github.com/nimeshjn/vendura-api/internal/presentation/http/middleware"
	"github.com/nimeshjn/vendura-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Product   *handler.ProductHandler
	Customer  *handler.CustomerHandler
	Cashier   *handler.CashierHandler
	Order     *handler.OrderHandler
	Dashboard *handler.DashboardHandler
	Settings  *handler.SettingsHandler
	Printer   *handler.PrinterHandler
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

		// Per-vendor rate limiter
		rateLimiter := middleware.NewVendorRateLimiter(middleware.RateLimiterConfig{
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
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Cashier accounts (admin only)
	protected.POST("/users/cashiers", middleware.RequireRole("admin"), h.Auth.CreateCashier)

	// Settings
	protected.GET("/settings", h.Settings.GetSettings)
	protected.PUT("/settings", middleware.RequireRole("admin"), h.Settings.UpdateSettings)


	// Products
	registerProductRoutes(protected, h)

	// Categories
	registerCategoryRoutes(protected, h)

	// Customers
	registerCustomerRoutes(protected, h)

	// Cashier: register lifecycle and checkout
	registerCashierRoutes(protected, h, deps)

	// Orders
	registerOrderRoutes(protected, h)

	// Printer
	registerPrinterRoutes(protected, h)
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", middleware.RequireRole("admin"), h.Product.Create)
		products.POST("/import", middleware.RequireRole("admin"), h.Product.ImportProducts)
		products.GET("/low-stock", h.Product.GetLowStock)
		products.GET("/barcode/:barcode", h.Product.GetByBarcode)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", middleware.RequireRole("admin"), h.Product.Update)
		products.DELETE("/:id", middleware.RequireRole("admin"), h.Product.Delete)
	}
}

func registerCategoryRoutes(protected *gin.RouterGroup, h *Handlers) {
	categories := protected.Group("/categories")
	{
		categories.GET("", h.Product.ListCategories)
		categories.POST("", middleware.RequireRole("admin"), h.Product.CreateCategory)
		categories.DELETE("/:id", middleware.RequireRole("admin"), h.Product.DeleteCategory)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}
}

func registerCashierRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	cashier := protected.Group("/cashier")
	{
		cashier.GET("/dashboard", h.Dashboard.GetSummary)
		cashier.GET("/register-status", h.Cashier.GetRegisterStatus)
		cashier.POST("/register/open", h.Cashier.OpenRegister)
		cashier.POST("/register/close", h.Cashier.CloseRegister)
		cashier.GET("/sessions", h.Cashier.ListSessions)
		cashier.GET("/quick-amounts", h.Cashier.QuickAmounts)
		// Checkout requires an idempotency key so retries never double-charge
		cashier.POST("/checkout", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Cashier.Checkout)
	}
}

func registerOrderRoutes(protected *gin.RouterGroup, h *Handlers) {
	orders := protected.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.GET("/:id", h.Order.Get)
		orders.POST("/:id/cancel", h.Order.Cancel)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printerGroup := protected.Group("/printer")
	{
		printerGroup.GET("/status", h.Printer.GetStatus)
		printerGroup.POST("/test", h.Printer.TestPrint)
		printerGroup.GET("/receipt/:id", h.Printer.GetReceipt)
		printerGroup.POST("/receipt/:id", h.Printer.PrintReceipt)
		printerGroup.POST("/upi-slip", h.Printer.PrintUPISlip)
	}
}
