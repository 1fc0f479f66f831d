package routes

import (
	"github.com/aidanlogic/aidanlogic/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// SetupHealthRoutes configures health check and build info endpoints
func SetupHealthRoutes(router *gin.Engine, health *handlers.HealthHandler) {
	router.GET("/health", health.Check)
	router.HEAD("/health", health.Check)
	router.GET("/version", health.Version)
}
