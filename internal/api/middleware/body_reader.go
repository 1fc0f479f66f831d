package middleware

import (
	"net/http"

	"github.com/aidanlogic/aidanlogic/internal/api/dto/common"

	"github.com/gin-gonic/gin"
)

// DefaultMaxBodySize bounds request bodies; a contact message is a few KB
const DefaultMaxBodySize int64 = 64 * 1024

// LimitRequestBody caps how much of a request body handlers may read.
// Reads past the limit fail with *http.MaxBytesError.
func LimitRequestBody(maxBodySize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBodySize {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, common.NewErrorResponse("Request body too large"))
			return
		}

		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize)
		}

		c.Next()
	}
}
