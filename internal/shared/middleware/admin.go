package middleware

import (
	"github.com/gin-gonic/gin"

	"mineral-catalog/internal/shared/response"
)

// AdminMiddleware rejects requests without an admin session with 403.
// It must run after Session.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			response.Forbidden(c, "Access denied: admin session required")
			c.Abort()
			return
		}

		c.Next()
	}
}
