package middleware

import (
	"time"

	"github.com/aidanlogic/aidanlogic/internal/api/constants"
	"github.com/aidanlogic/aidanlogic/internal/logging"
	"github.com/aidanlogic/aidanlogic/internal/utils"

	"github.com/gin-gonic/gin"
)

// RequestLogger writes one access line per request when LOG_REQUESTS is on
func RequestLogger(logger *logging.Logger) gin.HandlerFunc {
	if !logger.RequestsEnabled() {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logger.LogHTTPRequest(
			c.Request.Method,
			path,
			utils.GetRealIP(c),
			c.GetString(constants.ContextKeyRequestID),
			c.Writer.Status(),
			c.Writer.Size(),
			time.Since(start).String(),
		)
	}
}
