package middlewares

import "github.com/gin-gonic/gin"

// ServeAsAttachment makes browsers download responses instead of rendering
// them. Used for user uploaded media.
func ServeAsAttachment() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Disposition", "attachment")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Next()
	}
}
