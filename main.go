package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"shoppit/config"
	_ "shoppit/docs"
	"shoppit/middleware"
	"shoppit/models"
	"shoppit/routes"
)

// @title Shoppit API
// @version 1.0
// @description E-commerce backend: product catalog, session carts, payment initiation and reconciliation.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	config.LoadConfig()

	if config.AppConfig.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	config.ConnectDB()
	defer config.CloseDB()

	models.InitRedis()
	defer models.CloseRedis()

	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	routes.SetupRoutes(router)

	port := ":" + config.AppConfig.Port
	log.Printf("Server starting on port %s", port)
	log.Printf("Swagger UI: http://localhost:%s/swagger/index.html", config.AppConfig.Port)

	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
