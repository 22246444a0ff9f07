package response

import (
	"hub/utils/apperr"

	"github.com/gin-gonic/gin"
)

// Error sends a standardized error response
func Error(c *gin.Context, status int, message string) {
    c.JSON(status, gin.H{"error": message})
}

// Success sends a standardized success response
func Success(c *gin.Context, status int, data interface{}) {
    c.JSON(status, gin.H{"data": data})
}

// AppError sends an engine error with its mapped HTTP status and kind tag
func AppError(c *gin.Context, err error) {
    if kind, ok := apperr.KindOf(err); ok {
        c.JSON(apperr.Status(err), gin.H{"error": err.Error(), "kind": kind.String()})
        return
    }
    c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
}
