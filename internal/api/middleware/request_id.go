package middleware

import (
	"github.com/aidanlogic/aidanlogic/internal/api/constants"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxRequestIDLength rejects oversized client-supplied IDs
const maxRequestIDLength = 128

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Reuse the caller's ID when it is sane
		requestID := c.GetHeader(constants.HeaderRequestID)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.New().String()
		}

		c.Set(constants.ContextKeyRequestID, requestID)
		c.Header(constants.HeaderRequestID, requestID)

		c.Next()
	}
}
