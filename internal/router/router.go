package router

import (
	"time"

	"github.com/Praborkar/Inventory-Management-billing-System/internal/config"
	"github.com/Praborkar/Inventory-Management-billing-System/internal/handler"
	"github.com/Praborkar/Inventory-Management-billing-System/internal/infra"
	"github.com/Praborkar/Inventory-Management-billing-System/internal/middleware"
	"github.com/Praborkar/Inventory-Management-billing-System/internal/notify"
	"github.com/Praborkar/Inventory-Management-billing-System/internal/repository"
	"github.com/Praborkar/Inventory-Management-billing-System/internal/service"
	"github.com/Praborkar/Inventory-Management-billing-System/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, smtpCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	priceRepo := repository.NewPriceHistoryRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	notifier := notify.NewLogNotifier()
	dispatcher := worker.NewDispatcher(rdb)

	authSvc := service.NewAuthService(userRepo, cfg)
	catalogSvc := service.NewCatalogService(productRepo, movementRepo, priceRepo, notifier)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, productRepo, movementRepo, notifier, dispatcher)
	categorySvc := service.NewCategoryService(categoryRepo)
	dashboardSvc := service.NewDashboardService(productRepo, invoiceRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productsH := handler.NewProductsHandler(catalogSvc)
	invoicesH := handler.NewInvoicesHandler(invoiceSvc, cfg.BusinessName, cfg.BusinessGSTIN, cfg.PDFStoragePath)
	categoriesH := handler.NewCategoriesHandler(categorySvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, smtpCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Invoices — both roles create and read; deletion is admin only
		v1.POST("/invoices", middleware.RequireRole("admin", "cashier"), invoicesH.Create)
		v1.GET("/invoices", middleware.RequireRole("admin", "cashier"), invoicesH.List)
		v1.GET("/invoices/recent", middleware.RequireRole("admin", "cashier"), invoicesH.Recent)
		v1.GET("/invoices/:id", middleware.RequireRole("admin", "cashier"), invoicesH.Get)
		v1.GET("/invoices/:id/pdf", middleware.RequireRole("admin", "cashier"), invoicesH.PDF)
		v1.PATCH("/invoices/:id", middleware.RequireRole("admin", "cashier"), invoicesH.Update)
		v1.DELETE("/invoices/:id", middleware.RequireRole("admin"), invoicesH.Delete)

		// Products — all authenticated can read, admin writes
		v1.GET("/products", middleware.RequireRole("admin", "cashier"), productsH.List)
		v1.GET("/products/low-stock", middleware.RequireRole("admin", "cashier"), productsH.LowStock)
		v1.GET("/products/:id", middleware.RequireRole("admin", "cashier"), productsH.Get)
		v1.GET("/products/:id/movements", middleware.RequireRole("admin", "cashier"), productsH.Movements)
		v1.GET("/products/:id/price-history", middleware.RequireRole("admin", "cashier"), productsH.PriceHistory)
		prods := v1.Group("/products", middleware.RequireRole("admin"))
		{
			prods.POST("", productsH.Create)
			prods.PUT("/:id", productsH.Update)
			prods.DELETE("/:id", productsH.Delete)
			prods.PATCH("/:id/stock", productsH.AdjustStock)
		}

		// Categories — admin can write, all authenticated can read
		v1.GET("/categories", middleware.RequireRole("admin", "cashier"), categoriesH.List)
		categories := v1.Group("/categories", middleware.RequireRole("admin"))
		{
			categories.POST("", categoriesH.Create)
			categories.PUT("/:id", categoriesH.Update)
			categories.DELETE("/:id", categoriesH.Delete)
		}

		// Dashboard
		v1.GET("/dashboard/metrics", middleware.RequireRole("admin", "cashier"), dashboardH.Metrics)
		v1.GET("/dashboard/sales-report", middleware.RequireRole("admin"), dashboardH.SalesReport)

		// Users — admin only
		users := v1.Group("/users", middleware.RequireRole("admin"))
		{
			users.POST("", authH.CreateUser)
			users.GET("", authH.ListUsers)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
