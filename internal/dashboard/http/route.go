package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *DashboardHandler, authMiddleware gin.HandlerFunc) {
	r.GET("/dashboard", authMiddleware, h.Summary)
}
