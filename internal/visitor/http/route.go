package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *VisitorHandler, deviceMiddleware gin.HandlerFunc) {
	r.POST("/visitors/pulse", deviceMiddleware, h.Pulse)

	stats := r.Group("/stats")
	{
		stats.GET("", h.Today)
		stats.GET("/historical", h.Historical)
	}
}
