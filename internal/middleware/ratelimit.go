package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"

	"github.com/pvarga-dev/portfolio_backend/internal/dto"
)

// RateLimit limits requests per client IP using the provided limiter. Applied
// to the auth endpoints to slow down credential guessing.
func RateLimit(limiterInstance *limiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		lctx, err := limiterInstance.Get(c.Request.Context(), ip)
		if err != nil {
			GetLoggerFromCtx(c.Request.Context()).Error("Failed to get rate limit context",
				slog.String("ip", ip), slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewError(dto.CodeInternal, "Internal server error during rate limit check", nil))
			return
		}

		if lctx.Reached {
			GetLoggerFromCtx(c.Request.Context()).Warn("Rate limit exceeded",
				slog.String("ip", ip), slog.Int64("limit", lctx.Limit))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewError("RATE_LIMITED", "Too many requests. Please try again later.", nil))
			return
		}

		c.Next()
	}
}
