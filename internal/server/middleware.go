package server

import (
	"context"
	"net/http"
	"strconv"

	"github.com/aurafarming/mailportal/internal/ratelimit"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// rateLimitRegister throttles registrations per client address. On redis
// failure requests pass through; throttling protects capacity, it is not
// an auth boundary.
func (s *Server) rateLimitRegister() gin.HandlerFunc {
	return s.rateLimitWith("register", func(ctx context.Context, clientAddr string) (ratelimit.Result, error) {
		return s.limiter.AllowRegister(ctx, clientAddr)
	})
}

func (s *Server) rateLimitCheckUsername() gin.HandlerFunc {
	return s.rateLimitWith("check-username", func(ctx context.Context, clientAddr string) (ratelimit.Result, error) {
		return s.limiter.AllowCheckUsername(ctx, clientAddr)
	})
}

func (s *Server) rateLimitWith(endpoint string, allow func(context.Context, string) (ratelimit.Result, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.limiter.Enabled() {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		result, err := allow(ctx, c.ClientIP())
		if err != nil {
			s.log.Warn("rate limit check failed, allowing request",
				zap.String("endpoint", endpoint),
				zap.Error(err),
			)
			c.Next()
			return
		}

		if !result.Allowed {
			s.obsMetrics.RecordRateLimitDenied(ctx, endpoint, "bucket_empty")
			retryAfter := int(result.RetryAfter.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "Too many requests. Please try again later.",
			})
			return
		}

		s.obsMetrics.RecordRateLimitAllowed(ctx, endpoint)
		c.Next()
	}
}
