package utils

import (
	"github.com/aidanlogic/aidanlogic/internal/api/constants"
	"github.com/aidanlogic/aidanlogic/internal/api/dto/common"
	"github.com/aidanlogic/aidanlogic/internal/logging"

	"github.com/gin-gonic/gin"
)

// HandleAPIError logs err server-side and answers with message only.
// Error details never reach the client.
func HandleAPIError(c *gin.Context, err error, status int, message string) {
	logging.GetLogger().LogHTTPError(
		c.Request.Method,
		c.Request.URL.Path,
		GetRealIP(c),
		c.GetString(constants.ContextKeyRequestID),
		status,
		message,
		err,
	)

	c.AbortWithStatusJSON(status, common.NewErrorResponse(message))
}
