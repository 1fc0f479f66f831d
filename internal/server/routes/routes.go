package routes

import (
	"net/http"

	"github.com/aidanlogic/aidanlogic/internal/api/dto/common"
	"github.com/aidanlogic/aidanlogic/internal/api/middleware"
	"github.com/aidanlogic/aidanlogic/internal/config"
	"github.com/aidanlogic/aidanlogic/internal/logging"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Setup configures all route groups
func Setup(router *gin.Engine, h *Handlers, m *Middleware) {
	logger := logging.GetLogger()

	SetupHealthRoutes(router, h.Health)

	api := router.Group("/api")
	SetupContactRoutes(api, h.Contact, m)

	router.HandleMethodNotAllowed = true
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, common.NewErrorResponse("Not found"))
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, common.NewErrorResponse("Method not allowed"))
	})

	logger.Info("All routes have been set up successfully")
}

// SetupGlobalMiddleware configures middleware that applies to all routes
func SetupGlobalMiddleware(router *gin.Engine, cfg *config.Config, logger *logging.Logger) {
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestID())
	router.Use(otelgin.Middleware(cfg.ServiceName))
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.LimitRequestBody(middleware.DefaultMaxBodySize))
}
