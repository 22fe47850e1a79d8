package router

import (
	"time"

	"github.com/HanreDelport/Inventory-Manager/internal/config"
	"github.com/HanreDelport/Inventory-Manager/internal/handler"
	"github.com/HanreDelport/Inventory-Manager/internal/middleware"
	"github.com/HanreDelport/Inventory-Manager/internal/repository"
	"github.com/HanreDelport/Inventory-Manager/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
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
	componentRepo := repository.NewComponentRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	resolver := service.NewBomResolver(productRepo)

	authSvc := service.NewAuthService(userRepo, cfg)
	componentSvc := service.NewComponentService(componentRepo)
	productSvc := service.NewProductService(productRepo, componentRepo, resolver)
	orderSvc := service.NewOrderService(orderRepo, productRepo, componentRepo, resolver)
	capacitySvc := service.NewCapacityService(productRepo, rdb, time.Duration(cfg.CapacityCacheTTLSeconds)*time.Second)
	procurementSvc := service.NewProcurementService(orderRepo, componentRepo, resolver)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	componentsH := handler.NewComponentsHandler(componentSvc)
	productsH := handler.NewProductsHandler(productSvc, capacitySvc)
	ordersH := handler.NewOrdersHandler(orderSvc)
	procurementH := handler.NewProcurementHandler(procurementSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

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
		// Roles: operator, planner, admin — declared per-endpoint
		readAll := middleware.RequireRole("operator", "planner", "admin")
		write := middleware.RequireRole("planner", "admin")
		adminOnly := middleware.RequireRole("admin")

		// Components
		v1.GET("/components", readAll, componentsH.List)
		v1.GET("/components/:id", readAll, componentsH.GetByID)
		v1.POST("/components", write, componentsH.Create)
		v1.PUT("/components/:id", write, componentsH.Update)
		v1.PATCH("/components/:id/adjust-stock", write, componentsH.AdjustStock)
		v1.DELETE("/components/:id", adminOnly, componentsH.Delete)

		// Products and their bills of materials
		v1.GET("/products", readAll, productsH.List)
		// Registered before /products/:id so Gin does not treat "capacity"
		// as a product id.
		v1.GET("/products/capacity/calculate", readAll, productsH.CalculateCapacity)
		v1.GET("/products/:id", readAll, productsH.GetByID)
		v1.POST("/products", write, productsH.Create)
		v1.PUT("/products/:id", write, productsH.Update)
		v1.PUT("/products/:id/bom", write, productsH.UpdateBom)
		v1.DELETE("/products/:id", adminOnly, productsH.Delete)

		// Manufacturing orders — operators run the floor, so every role
		// may create and advance orders.
		orders := v1.Group("/orders", readAll)
		{
			orders.POST("", ordersH.Create)
			orders.GET("", ordersH.List)
			orders.GET("/:id", ordersH.GetByID)
			orders.GET("/:id/requirements", ordersH.Requirements)
			orders.POST("/:id/allocate", ordersH.Allocate)
			orders.POST("/:id/complete", ordersH.Complete)
		}

		// Procurement planning
		v1.GET("/procurement/needs", middleware.RequireRole("planner", "admin"), procurementH.Needs)

		// User administration
		users := v1.Group("/users", adminOnly)
		{
			users.POST("", authH.CreateUser)
			users.GET("", authH.ListUsers)
			users.DELETE("/:id", authH.DeactivateUser)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
