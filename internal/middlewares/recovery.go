package middlewares

import (
	"errors"
	"net/http"
	"syscall"

	"codetrek/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandlerMiddleware turns a panicking handler into a 500 response.
// A client that hung up gets nothing written back.
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}

			fields := []zap.Field{
				zap.Any("panic", recovered),
				zap.String("method", c.Request.Method),
				zap.String("route", c.FullPath()),
				zap.String("client_ip", c.ClientIP()),
				zap.Stack("stack"),
			}
			if user := CurrentUser(c); user != nil {
				fields = append(fields, zap.Int64("user_id", user.ID))
			}

			if err, ok := recovered.(error); ok && brokenPipe(err) {
				logger.Log.Warn("Client connection lost", fields...)
				c.Abort()
				return
			}

			logger.Log.Error("Recovered from panic", fields...)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}()
		c.Next()
	}
}

func brokenPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, syscall.ECONNRESET)
}
