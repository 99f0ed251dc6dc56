package middleware

import (
	"net/http"

	"authhub/auth-api/access"
	"authhub/auth-api/model"

	"github.com/gin-gonic/gin"
)

// NewStaffMiddleware gates the admin surface. It must run after the
// JWT middleware, which puts the loaded user into the context.
func NewStaffMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)
		user := c.MustGet("user").(*model.User)

		if !access.IsStaff(user) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":     "staff_only",
				"requestID": requestID,
			})
			return
		}

		c.Next()
	}
}
