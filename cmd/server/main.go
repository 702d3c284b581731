package main

import (
	"fmt"

	"emsys/internal/api/routes"
	"emsys/internal/config"
	"emsys/internal/models"
	"emsys/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	// Initialize database
	if err := models.InitDB(cfg); err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}

	// Seed default taxonomies and the initial log entry
	if err := models.SeedDefaults(); err != nil {
		logrus.Fatalf("Failed to seed defaults: %v", err)
	}

	// Create the default administrator if missing
	authService := services.NewAuthService(cfg)
	if err := authService.CreateDefaultAdmin(); err != nil {
		logrus.Warnf("Failed to create default admin: %v", err)
	}

	// Create router
	r := gin.Default()

	// Setup routes
	routes.SetupRoutes(r, cfg)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": "Endpoint not found"})
	})

	// Run server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logrus.Infof("Starting emergency management API on %s", addr)
	if err := r.Run(addr); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}
