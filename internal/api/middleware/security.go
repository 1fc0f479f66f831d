package middleware

import (
	"github.com/gin-gonic/gin"
)

// SecurityHeaders adds headers suited to a JSON-only API
func SecurityHeaders(production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Permissions-Policy", "accelerometer=(), camera=(), geolocation=(), gyroscope=(), magnetometer=(), microphone=(), payment=(), usb=()")

		// Nothing here renders HTML
		c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		// Only meaningful behind TLS
		if production {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
