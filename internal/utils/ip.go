package utils

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// GetRealIP returns the client IP. CF-Connecting-IP is set by Cloudflare on
// every proxied request; otherwise gin resolves X-Forwarded-For and
// X-Real-IP only when the direct peer is a trusted proxy.
func GetRealIP(c *gin.Context) string {
	if ip := strings.TrimSpace(c.GetHeader("CF-Connecting-IP")); ip != "" {
		return ip
	}
	return c.ClientIP()
}
