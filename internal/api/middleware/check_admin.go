package middleware

import (
	"leakerflow/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// CheckRoles requires the current user to hold at least one of the given roles.
func CheckRoles(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roles := c.GetStringSlice("roles")

		hasPermission := false
		for _, required := range requiredRoles {
			for _, userRole := range roles {
				if required == userRole {
					hasPermission = true
					break
				}
			}
			if hasPermission {
				break
			}
		}

		if !hasPermission {
			response.Fail(c, response.Forbidden, "insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
