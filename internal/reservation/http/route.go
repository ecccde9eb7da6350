package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *ReservationHandler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	reservations := r.Group("/reservations")
	reservations.Use(authMiddleware)
	{
		reservations.GET("", h.List)
		reservations.POST("", h.Create)
		reservations.GET("/:id", h.Get)

		reservations.POST("/refresh", adminMiddleware, h.Refresh)
		reservations.POST("/:id/approve", adminMiddleware, h.Approve)
		reservations.POST("/:id/reject", adminMiddleware, h.Reject)
		reservations.DELETE("/:id", adminMiddleware, h.Delete)
	}
}
