package response

import (
	"voting-service/internal/models"

	"github.com/gin-gonic/gin"
)

// Abort writes a standardized error body and stops the handler chain.
func Abort(c *gin.Context, status int, code, details string) {
	c.AbortWithStatusJSON(status, models.ErrorResponse{
		Code:    status,
		Error:   code,
		Message: Message(code),
		Details: details,
	})
}
