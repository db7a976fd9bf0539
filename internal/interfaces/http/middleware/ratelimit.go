package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/garagehq/repairshop/internal/infrastructure/ratelimit"
	"github.com/garagehq/repairshop/internal/shared/errors"
	"github.com/garagehq/repairshop/internal/shared/logger"
	"github.com/garagehq/repairshop/internal/shared/utils"
)

// RateLimit enforces limiter per client IP. When the limiter backend fails
// the request is let through.
func RateLimit(limiter ratelimit.Limiter, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Warnw("rate limiter unavailable, allowing request", "error", err, "path", c.FullPath())
			c.Next()
			return
		}
		if !allowed {
			utils.ErrorResponseWithError(c, errors.NewTooManyRequestsError("rate limit exceeded, please try again later"))
			c.Abort()
			return
		}
		c.Next()
	}
}
