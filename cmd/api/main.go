package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"microgrid-planner/internal/api/handlers"
	"microgrid-planner/internal/api/middleware"
	"microgrid-planner/internal/data"

	"github.com/gin-gonic/gin"
)

func main() {
	// Get configuration from environment
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	// Log working directory and important paths for debugging
	wd, err := os.Getwd()
	if err == nil {
		log.Printf("Working directory: %s", wd)
		storageDir := filepath.Join(wd, "examples", "storage")
		if info, err := os.Stat(storageDir); err == nil && info.IsDir() {
			log.Printf("Storage directory found: %s", storageDir)
		} else {
			log.Printf("Storage directory not found at: %s (error: %v)", storageDir, err)
		}
	}

	// Set up Gin router
	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// Apply middleware
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	// Initialize handlers
	weatherClient := data.NewOpenMeteoClient(os.Getenv("OPENMETEO_BASE_URL"))
	simulateHandler := handlers.NewSimulateHandler(weatherClient)
	catalogHandler := handlers.NewCatalogHandler()

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/simulate", simulateHandler.RunSimulation)
		api.POST("/simulate/compare", simulateHandler.CompareScenarios)

		api.GET("/turbines", catalogHandler.ListTurbines)
		api.GET("/profiles", catalogHandler.ListProfiles)
	}

	// Serve static files from web/dist (if it exists)
	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = "./web/dist"
	}

	if _, err := os.Stat(staticDir); err == nil {
		router.Static("/assets", staticDir+"/assets")
		router.StaticFile("/favicon.ico", staticDir+"/favicon.ico")

		// Serve index.html for all non-API routes (SPA routing)
		router.NoRoute(func(c *gin.Context) {
			path := c.Request.URL.Path
			if len(path) >= 4 && path[:4] == "/api" {
				c.JSON(404, gin.H{"error": "Not found"})
			} else {
				c.File(staticDir + "/index.html")
			}
		})
		log.Printf("Serving static files from %s", staticDir)
	} else {
		log.Printf("Static directory %s not found, skipping static file serving", staticDir)
	}

	// Start server
	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
