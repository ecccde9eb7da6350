package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ukk/facility-booking-backend/internal/logger"
)

// AuthRequired is a Gin middleware that validates JWT from Authorization: Bearer <token>
// and rejects tokens that were revoked at logout.
func AuthRequired(jwtManager *JWTManager, revoker Revoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing Authorization header",
			})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid Authorization header format",
			})
			return
		}

		claims, err := jwtManager.ParseAndValidate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired token",
			})
			return
		}

		revoked, err := revoker.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			logger.ErrorContext(c.Request.Context(), "token revocation lookup failed", "error", err)
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error": "unable to verify token",
			})
			return
		}
		if revoked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "token has been revoked",
			})
			return
		}

		// Store user info into Gin context for later handlers.
		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxRole, claims.Role)
		c.Set(ctxTokenID, claims.ID)
		if claims.ExpiresAt != nil {
			c.Set(ctxTokenExp, claims.ExpiresAt.Time)
		}

		c.Next()
	}
}

// RequireAdmin rejects requests whose token does not carry the admin role.
// It MUST be used after AuthRequired.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserID(c) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if !IsAdmin(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: admin access required"})
			return
		}
		c.Next()
	}
}
