package auth

import (
	"time"

	"github.com/gin-gonic/gin"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

const (
	ctxUserID   = "userID"
	ctxRole     = "userRole"
	ctxTokenID  = "tokenID"
	ctxTokenExp = "tokenExpiresAt"
)

// GetUserID returns the authenticated user's ID or empty string.
func GetUserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// GetRole returns the authenticated user's role or empty string.
func GetRole(c *gin.Context) string {
	return c.GetString(ctxRole)
}

// IsAdmin reports whether the authenticated user carries the admin role.
func IsAdmin(c *gin.Context) bool {
	return GetRole(c) == RoleAdmin
}

// GetTokenID returns the jti of the token used for this request.
func GetTokenID(c *gin.Context) string {
	return c.GetString(ctxTokenID)
}

// GetTokenExpiry returns when the current request's token expires.
func GetTokenExpiry(c *gin.Context) time.Time {
	return c.GetTime(ctxTokenExp)
}
