package main

import (
	"net/http"
	"os"

	"restaurant-menu-api/config"
	"restaurant-menu-api/routes"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.Init()
	defer config.Log.Sync()

	// Set Gin mode
	mode := os.Getenv("GIN_MODE")
	if mode == "" && config.Cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	config.InitDB()

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Restaurant Menu Publishing API",
			"version": "1.0.0",
		})
	})

	// Register all routes
	routes.SetupRoutes(r)

	// Start server
	config.Log.Info("Server starting", zap.String("port", config.Cfg.Port))
	if err := r.Run(":" + config.Cfg.Port); err != nil {
		config.Log.Fatal("Failed to start server", zap.Error(err))
	}
}
