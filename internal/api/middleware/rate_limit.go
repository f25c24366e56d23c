package middleware

import (
	log "log/slog"
	"strconv"
	"time"

	"leakerflow/internal/api/config"
	"leakerflow/internal/pkg/consts"
	"leakerflow/internal/pkg/redis"
	"leakerflow/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RateLimitMiddleware enforces a fixed-window request limit per client.
// Authenticated clients are keyed by user id, anonymous ones by IP.
func RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg := config.Cfg.RateLimit
		if cfg.Requests <= 0 {
			c.Next()
			return
		}

		identity := c.ClientIP()
		if uid, ok := c.Get("user_id"); ok {
			if userID, ok := uid.(uint64); ok && userID > 0 {
				identity = "u" + strconv.FormatUint(userID, 10)
			}
		}

		window := time.Duration(cfg.WindowMs) * time.Millisecond
		count, err := redis.IncrWithExpiration(c.Request.Context(), consts.RateLimitKey+identity, window)
		if err != nil {
			// Degrade open when the counter store is unavailable.
			log.WarnContext(c.Request.Context(), "rate limit check failed", "err", err)
			c.Next()
			return
		}

		if count > int64(cfg.Requests) {
			response.Fail(c, response.TooManyRequests, "rate limit exceeded")
			c.Abort()
			return
		}

		c.Next()
	}
}
