package routes

import (
	"github.com/aidanlogic/aidanlogic/internal/api/handlers"
	"github.com/aidanlogic/aidanlogic/internal/api/middleware"
)

// Handlers contains all the route handlers
type Handlers struct {
	Contact *handlers.ContactHandler
	Health  *handlers.HealthHandler
}

// Middleware contains the route-level middleware
type Middleware struct {
	Validation *middleware.ValidationMiddleware
}
