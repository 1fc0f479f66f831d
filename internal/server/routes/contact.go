package routes

import (
	"github.com/aidanlogic/aidanlogic/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// SetupContactRoutes configures contact form routes
func SetupContactRoutes(router *gin.RouterGroup, contact *handlers.ContactHandler, m *Middleware) {
	// Public endpoint, protected by the Turnstile check inside the service
	router.POST("/contact",
		m.Validation.ValidateContactRequest(),
		contact.Submit,
	)
}
