package http

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

const DeviceKeyHeader = "X-Device-Key"

// RequireDeviceKey admits requests carrying the shared sensor key.
// An empty key disables the check.
func RequireDeviceKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.Next()
			return
		}
		got := c.GetHeader(DeviceKeyHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid device key"})
			return
		}
		c.Next()
	}
}
