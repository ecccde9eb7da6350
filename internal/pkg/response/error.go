package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ukk/facility-booking-backend/internal/logger"
	"github.com/ukk/facility-booking-backend/internal/pkg/apperror"
)

// ErrorResponse defines the JSON structure for error responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Error sends a JSON error response.
// AppErrors are rendered with their own status code; anything else is logged
// and reported as 500 Internal Server Error.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
		return
	}

	logger.ErrorContext(c.Request.Context(), "unhandled request error",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"error", err,
	)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// BadRequest sends a 400 response for binding failures.
func BadRequest(c *gin.Context, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	c.JSON(http.StatusBadRequest, resp)
}
