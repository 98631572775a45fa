package router

import (
	"context"
	"time"

	"github.com/MartinOstios/backend-posco/internal/authz"
	"github.com/MartinOstios/backend-posco/internal/config"
	"github.com/MartinOstios/backend-posco/internal/handler"
	"github.com/MartinOstios/backend-posco/internal/infra"
	"github.com/MartinOstios/backend-posco/internal/middleware"
	"github.com/MartinOstios/backend-posco/internal/model"
	"github.com/MartinOstios/backend-posco/internal/repository"
	"github.com/MartinOstios/backend-posco/internal/security"
	"github.com/MartinOstios/backend-posco/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Handlers groups every API handler mounted under the versioned prefix.
type Handlers struct {
	Auth          *handler.AuthHandler
	Enterprises   *handler.EnterprisesHandler
	Employees     *handler.EmployeesHandler
	Roles         *handler.RolesHandler
	Categories    *handler.CategoriesHandler
	Suppliers     *handler.SuppliersHandler
	Products      *handler.ProductsHandler
	Clients       *handler.ClientsHandler
	Invoices      *handler.InvoicesHandler
	Sales         *handler.SalesHandler
	Notifications *handler.NotificationsHandler
}

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis.
// ctx bounds background work such as the in-memory limiter purge.
func New(ctx context.Context, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	metrics := middleware.NewHTTPMetrics(prometheus.DefaultRegisterer)

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins()))
	r.Use(middleware.ErrorHandler())
	r.Use(metrics.Middleware())

	// ── Infrastructure ───────────────────────────────────────────────────────
	tokens := security.NewTokenManager(cfg.SecretKey, time.Duration(cfg.AccessTokenExpireMinutes)*time.Minute)
	mailer := infra.NewMailer(cfg)
	pusher := infra.NewExpoClient(cfg.ExpoPushURL, cfg.ExpoToken)

	// ── Repositories ─────────────────────────────────────────────────────────
	tx := repository.NewTxManager(db)
	enterpriseRepo := repository.NewEnterpriseRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	permissionRepo := repository.NewPermissionRepository(db)
	resetRepo := repository.NewResetTokenRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	productRepo := repository.NewProductRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	clientRepo := repository.NewClientRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	notificationRepo := repository.NewNotificationTokenRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	resetTTL := time.Duration(cfg.ResetCodeExpireMinutes) * time.Minute
	stockSvc := service.NewStockService(tx, productRepo, movementRepo)

	authSvc := service.NewAuthService(tx, employeeRepo, resetRepo, tokens, mailer, resetTTL)
	enterpriseSvc := service.NewEnterpriseService(enterpriseRepo)
	employeeSvc := service.NewEmployeeService(employeeRepo, roleRepo)
	roleSvc := service.NewRoleService(tx, roleRepo, permissionRepo)
	permissionSvc := service.NewPermissionService(permissionRepo)
	categorySvc := service.NewCategoryService(categoryRepo)
	supplierSvc := service.NewSupplierService(supplierRepo)
	productSvc := service.NewProductService(productRepo, categoryRepo, supplierRepo, movementRepo, stockSvc)
	clientSvc := service.NewClientService(clientRepo, saleRepo)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, saleRepo, enterpriseRepo, infra.RenderInvoicePDF)
	saleSvc := service.NewSaleService(tx, saleRepo, invoiceRepo, clientRepo, productRepo, stockSvc)
	notificationSvc := service.NewNotificationService(tx, notificationRepo, employeeRepo, pusher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	h := Handlers{
		Auth:          handler.NewAuthHandler(authSvc),
		Enterprises:   handler.NewEnterprisesHandler(enterpriseSvc),
		Employees:     handler.NewEmployeesHandler(employeeSvc),
		Roles:         handler.NewRolesHandler(roleSvc, permissionSvc),
		Categories:    handler.NewCategoriesHandler(categorySvc),
		Suppliers:     handler.NewSuppliersHandler(supplierSvc),
		Products:      handler.NewProductsHandler(productSvc),
		Clients:       handler.NewClientsHandler(clientSvc),
		Invoices:      handler.NewInvoicesHandler(invoiceSvc),
		Sales:         handler.NewSalesHandler(saleSvc),
		Notifications: handler.NewNotificationsHandler(notificationSvc),
	}

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(db, rdb, pusher))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	Mount(r.Group(cfg.APIPrefix), h, authz.NewResolver(tokens, employeeRepo), newLimiter(ctx, cfg, rdb))

	// Swagger UI, outside production only
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}

// newLimiter prefers Redis so the window is shared between replicas.
func newLimiter(ctx context.Context, cfg *config.Config, rdb *redis.Client) middleware.Limiter {
	if rdb != nil {
		return middleware.NewRedisLimiter(rdb, cfg.LoginRateLimit, time.Minute)
	}
	log.Warn().Msg("REDIS_URL not set: rate limiting is per process")
	l := middleware.NewMemoryLimiter(cfg.LoginRateLimit, time.Minute)
	go l.RunPurge(ctx, 5*time.Minute)
	return l
}

// Mount registers the API routes on api. Everything except login, password
// recovery and enterprise creation requires a bearer token.
func Mount(api *gin.RouterGroup, h Handlers, resolver middleware.IdentityResolver, limiter middleware.Limiter) {
	perm := func(name model.PermissionName) gin.HandlerFunc {
		return middleware.Require(authz.PermissionRequired(name))
	}
	superuser := middleware.Require(authz.SuperuserRequired)

	// Public
	auth := api.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimit(limiter, "login"), h.Auth.Login)
		auth.POST("/password-recovery/:email", middleware.RateLimit(limiter, "password-recovery"), h.Auth.RecoverPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
	}
	api.POST("/enterprises", h.Enterprises.Create)

	// Protected
	v1 := api.Group("", middleware.Authenticate(resolver))

	v1.POST("/auth/login/test-token", h.Auth.TestToken)

	v1.GET("/enterprises", h.Enterprises.List)
	v1.GET("/enterprises/:id", h.Enterprises.Get)
	v1.DELETE("/enterprises/:id", superuser, h.Enterprises.Delete)

	employees := v1.Group("/employees")
	{
		manage := perm(model.PermManageEmployees)
		employees.GET("", h.Employees.List)
		employees.POST("", manage, h.Employees.Create)
		employees.GET("/me", h.Employees.Me)
		employees.PATCH("/me", h.Employees.UpdateMe)
		employees.GET("/:id", h.Employees.Get)
		employees.PUT("/:id", manage, h.Employees.Update)
		employees.PATCH("/:id/activate", manage, h.Employees.Activate)
		employees.PATCH("/:id/deactivate", manage, h.Employees.Deactivate)
		employees.DELETE("/:id", manage, h.Employees.Delete)
	}

	roles := v1.Group("/roles")
	{
		roles.GET("", h.Roles.ListRoles)
		roles.POST("", h.Roles.CreateRole)
		roles.GET("/:id", h.Roles.GetRole)
		roles.GET("/:id/permissions", h.Roles.RolePermissions)
	}

	permissions := v1.Group("/permissions", superuser)
	{
		permissions.GET("", h.Roles.ListPermissions)
		permissions.POST("", h.Roles.CreatePermission)
		permissions.GET("/:id", h.Roles.GetPermission)
	}

	categories := v1.Group("/categories")
	{
		manage := perm(model.PermManageInventory)
		categories.GET("", h.Categories.List)
		categories.POST("", manage, h.Categories.Create)
		categories.GET("/:id", h.Categories.Get)
		categories.PUT("/:id", manage, h.Categories.Update)
		categories.DELETE("/:id", manage, h.Categories.Delete)
	}

	suppliers := v1.Group("/suppliers")
	{
		manage := perm(model.PermManageSuppliers)
		suppliers.GET("", h.Suppliers.List)
		suppliers.POST("", manage, h.Suppliers.Create)
		suppliers.GET("/:id", h.Suppliers.Get)
		suppliers.PUT("/:id", manage, h.Suppliers.Update)
		suppliers.DELETE("/:id", manage, h.Suppliers.Delete)
	}

	products := v1.Group("/products")
	{
		manage := perm(model.PermManageInventory)
		products.GET("", h.Products.List)
		products.POST("", manage, h.Products.Create)
		products.GET("/category/:category_id", h.Products.ListByCategory)
		products.GET("/:id", h.Products.Get)
		products.PUT("/:id", manage, h.Products.Update)
		products.DELETE("/:id", manage, h.Products.Delete)
		products.PATCH("/:id/stock", manage, h.Products.AdjustStock)
		products.GET("/:id/movements", perm(model.PermViewReports), h.Products.Movements)
	}

	clients := v1.Group("/clients")
	{
		manage := perm(model.PermManageSales)
		clients.GET("", h.Clients.List)
		clients.POST("", manage, h.Clients.Create)
		clients.GET("/:id", h.Clients.Get)
		clients.GET("/:id/sales", h.Clients.Sales)
		clients.DELETE("/:id", manage, h.Clients.Delete)
	}

	invoices := v1.Group("/invoices")
	{
		manage := perm(model.PermManageSales)
		invoices.GET("", h.Invoices.List)
		invoices.POST("", manage, h.Invoices.Create)
		invoices.GET("/by-date-range", h.Invoices.ByDateRange)
		invoices.GET("/:id", h.Invoices.Get)
		invoices.GET("/:id/sales", h.Invoices.Sales)
		invoices.GET("/:id/pdf", h.Invoices.PDF)
		invoices.DELETE("/:id", manage, h.Invoices.Delete)
	}

	sales := v1.Group("/sales")
	{
		manage := perm(model.PermManageSales)
		sales.GET("", h.Sales.List)
		sales.POST("", manage, h.Sales.Create)
		sales.GET("/by-date-range", h.Sales.ByDateRange)
		sales.GET("/:id", h.Sales.Get)
		sales.DELETE("/:id", manage, h.Sales.Delete)
	}

	notifications := v1.Group("/notifications")
	{
		notifications.POST("/register-token", h.Notifications.Register)
		notifications.GET("/my-tokens", h.Notifications.MyTokens)
		notifications.PUT("/tokens/:id", h.Notifications.Update)
		notifications.DELETE("/tokens/:id", h.Notifications.Delete)
		notifications.POST("/send-test", h.Notifications.SendTest)
		notifications.POST("/send-to-user/:user_id", superuser, h.Notifications.SendToUser)
	}
}
