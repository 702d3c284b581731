package routes

import (
	"emsys/internal/api/handlers"
	"emsys/internal/api/middleware"
	"emsys/internal/config"
	"emsys/internal/models"
	"emsys/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config) {
	// Initialize services
	authService := services.NewAuthService(cfg)
	permService := services.NewPermissionService()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, cfg)
	eventHandler := handlers.NewEventHandler()
	inventoryHandler := handlers.NewInventoryHandler()
	taxonomyHandler := handlers.NewTaxonomyHandler()
	logHandler := handlers.NewLogHandler()
	resourceHandler := handlers.NewResourceHandler()
	userHandler := handlers.NewUserHandler(cfg)
	permissionHandler := handlers.NewPermissionHandler(permService)
	dashboardHandler := handlers.NewDashboardHandler()
	reportHandler := handlers.NewReportHandler()

	// Middleware
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.RateLimitMiddleware(cfg.Security.RateLimit))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes
	api := r.Group("/api")
	{
		api.GET("/health", handlers.Health)

		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}
	}

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		protected.GET("/auth/me", authHandler.GetMe)

		// Emergency events
		events := protected.Group("/events")
		{
			events.POST("", middleware.RequirePermission(permService, "events.create"), eventHandler.CreateEvent)
			events.GET("", middleware.RequirePermission(permService, "events.read"), eventHandler.GetEvents)
			events.GET("/map", eventHandler.GetMapEvents)
			events.GET("/:id", middleware.RequirePermission(permService, "events.read"), eventHandler.GetEvent)
			events.PUT("/:id", middleware.RequirePermission(permService, "events.update"), eventHandler.UpdateEvent)
			events.DELETE("/:id", middleware.RequirePermission(permService, "events.delete"), eventHandler.DeleteEvent)
		}

		// Inventory
		inventory := protected.Group("/inventory")
		{
			inventory.POST("", middleware.RequirePermission(permService, "inventory.create"), inventoryHandler.CreateItem)
			inventory.GET("", middleware.RequirePermission(permService, "inventory.read"), inventoryHandler.GetItems)
			inventory.GET("/alerts", inventoryHandler.GetAlerts)
			inventory.GET("/categories", inventoryHandler.GetCategories)
			inventory.GET("/locations", inventoryHandler.GetLocations)
			inventory.GET("/:id", middleware.RequirePermission(permService, "inventory.read"), inventoryHandler.GetItem)
			inventory.PUT("/:id", middleware.RequirePermission(permService, "inventory.update"), inventoryHandler.UpdateItem)
			inventory.DELETE("/:id", middleware.RequirePermission(permService, "inventory.delete"), inventoryHandler.DeleteItem)
			inventory.POST("/:id/update-quantity", middleware.RequirePermission(permService, "inventory.update"), inventoryHandler.UpdateQuantity)
		}

		// Event type taxonomy
		eventTypes := protected.Group("/event-types")
		{
			eventTypes.GET("", taxonomyHandler.GetEventTypes)
			eventTypes.POST("", middleware.RequireRole(models.RoleAdmin, models.RoleCoordinator), taxonomyHandler.CreateEventType)
			eventTypes.PUT("/:id", middleware.RequireRole(models.RoleAdmin, models.RoleCoordinator), taxonomyHandler.UpdateEventType)
			eventTypes.DELETE("/:id", middleware.RequireRole(models.RoleAdmin, models.RoleCoordinator), taxonomyHandler.DeleteEventType)
		}

		// Inventory category taxonomy
		categories := protected.Group("/inventory-categories")
		{
			categories.GET("", taxonomyHandler.GetCategories)
			categories.POST("", middleware.RequireRole(models.RoleAdmin), taxonomyHandler.CreateCategory)
			categories.PUT("/:id", middleware.RequireRole(models.RoleAdmin), taxonomyHandler.UpdateCategory)
			categories.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), taxonomyHandler.DeleteCategory)
		}

		// Operational logs
		logs := protected.Group("/logs")
		{
			logs.POST("", middleware.RequirePermission(permService, "logs.create"), logHandler.CreateLog)
			logs.GET("", middleware.RequirePermission(permService, "logs.read"), logHandler.GetLogs)
		}

		// Trained resources
		resources := protected.Group("/resources")
		{
			resources.POST("", middleware.RequirePermission(permService, "resources.create"), resourceHandler.CreateResource)
			resources.GET("", resourceHandler.GetResources)
		}

		// Dashboard
		protected.GET("/dashboard/stats", dashboardHandler.GetDashboardStats)

		// Reports
		reports := protected.Group("/reports")
		{
			reports.POST("/generate", reportHandler.GenerateReport)
			reports.GET("/templates", reportHandler.GetReportTemplates)
		}

		// Administration
		admin := protected.Group("/admin")
		{
			users := admin.Group("/users")
			users.Use(middleware.RequireRole(models.RoleAdmin))
			{
				users.GET("", userHandler.GetUsers)
				users.POST("", userHandler.CreateUser)
				users.PUT("/:username", userHandler.UpdateUser)
				users.DELETE("/:username", userHandler.DeleteUser)
				users.POST("/:username/reset-password", userHandler.ResetPassword)
			}

			admin.GET("/stats", middleware.RequireRole(models.RoleAdmin), dashboardHandler.GetAdminStats)

			permissions := admin.Group("/permissions")
			permissions.Use(middleware.RequirePermission(permService, services.PermManage))
			{
				permissions.GET("", permissionHandler.GetAllPermissions)
				permissions.GET("/:role", permissionHandler.GetRolePermissions)
				permissions.POST("/:role", permissionHandler.UpdateRolePermissions)
			}
		}
	}
}
