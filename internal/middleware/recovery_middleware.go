package middleware

import (
	"io"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryMiddleware recovers handler panics through gin's recovery, logging them with zap
// instead of gin's own writer. Clients get the usual error body with code internal_error.
func RecoveryMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		panic("RecoveryMiddleware requires a non-nil zap.Logger instance")
	}
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("stacktrace", string(debug.Stack())),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.String("user_id", c.GetString(ContextUserID)),
		)
		// A partly written response cannot be replaced.
		if c.Writer.Written() {
			c.Abort()
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
			Error: "Internal Server Error",
			Code:  "internal_error",
		})
	})
}
