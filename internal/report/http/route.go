package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *ReportHandler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	r.GET("/reports", authMiddleware, adminMiddleware, h.Generate)
}
