package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/aidanlogic/aidanlogic/internal/api/constants"
	"github.com/aidanlogic/aidanlogic/internal/api/dto/common"
	"github.com/aidanlogic/aidanlogic/internal/logging"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic into the standard internal-error body
func Recovery(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("[PANIC] %s | %s | %s | %s | %s\n%s",
					c.Request.Method,
					c.Request.URL.Path,
					c.ClientIP(),
					c.GetString(constants.ContextKeyRequestID),
					fmt.Sprint(err),
					debug.Stack(),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, common.NewErrorResponse("Internal server error"))
			}
		}()

		c.Next()
	}
}
