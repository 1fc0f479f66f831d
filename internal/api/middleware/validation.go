package middleware

import (
	"errors"
	"net/http"

	"github.com/aidanlogic/aidanlogic/internal/api/constants"
	"github.com/aidanlogic/aidanlogic/internal/api/dto/v1/contact"
	"github.com/aidanlogic/aidanlogic/internal/service"
	"github.com/aidanlogic/aidanlogic/internal/utils"

	"github.com/gin-gonic/gin"
)

// ValidationMiddleware decodes request bodies before they reach handlers
type ValidationMiddleware struct{}

// NewValidationMiddleware creates a new validation middleware
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{}
}

// ValidateContactRequest decodes the contact form JSON. Field-level checks
// happen in the contact service, after the verification token check.
func (m *ValidationMiddleware) ValidateContactRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req contact.ContactRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				utils.HandleAPIError(c, err, http.StatusRequestEntityTooLarge, "Request body too large")
				return
			}
			// An unreadable body is an unexpected error, not a client error
			utils.HandleAPIError(c, err, http.StatusInternalServerError, service.MessageInternalError)
			return
		}

		c.Set(constants.ContextKeyContact, &req)
		c.Next()
	}
}
