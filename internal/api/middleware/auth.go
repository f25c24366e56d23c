package middleware

import (
	"context"
	"strings"

	"leakerflow/internal/pkg/consts"
	"leakerflow/internal/pkg/redis"
	"leakerflow/internal/pkg/response"
	"leakerflow/internal/pkg/security"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the JWT and injects the user identity into the context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			response.Fail(c, response.Unauthorized, "token missing or malformed")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		signature, err := security.ExtractSignature(tokenString)
		if err != nil {
			response.Fail(c, response.Unauthorized, "token missing or malformed")
			c.Abort()
			return
		}

		// Revoked tokens are stored by signature until they expire.
		value, err := redis.GetValue(c.Request.Context(), consts.TokenRevokedKey+signature)
		if err != nil {
			response.Fail(c, response.InternalServerError, "unexpected error")
			c.Abort()
			return
		}
		if value != "" {
			response.Fail(c, response.Unauthorized, "token invalid or expired")
			c.Abort()
			return
		}

		claims, err := security.ValidateToken(tokenString)
		if err != nil {
			response.Fail(c, response.Unauthorized, "token invalid or expired")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("roles", claims.Roles)

		newCtx := context.WithValue(c.Request.Context(), "user_id", claims.UserID)
		c.Request = c.Request.WithContext(newCtx)

		c.Next()
	}
}
