package middleware

import (
	"time"

	"ordernest/internal/infrastructure/ratelimit"
	"ordernest/pkg/errors"
	"ordernest/pkg/response"

	"github.com/labstack/echo/v4"
)

type RateLimitMiddleware struct {
	limiter *ratelimit.RateLimiter
}

func NewRateLimitMiddleware(limiter *ratelimit.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
	}
}

// Limit throttles one named action per authenticated user. Unauthenticated
// requests fall back to the client IP.
func (m *RateLimitMiddleware) Limit(action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key, ok := c.Get("uid").(string)
			if !ok || key == "" {
				key = c.RealIP()
			}

			allowed, wait := m.limiter.Allow(key, action)
			if !allowed {
				return response.Error(c, errors.TooManyRequests(
					"Too many requests, retry in "+wait.Round(time.Second).String()))
			}

			return next(c)
		}
	}
}
