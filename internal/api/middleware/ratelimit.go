package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-redis/redis_rate/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Limiter is satisfied by *redis_rate.Limiter.
type Limiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

// RateLimit caps requests per customer per minute under keyPrefix. A limiter
// error lets the request through. perMinute <= 0 disables the limit.
func RateLimit(limiter Limiter, keyPrefix string, perMinute int, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if perMinute <= 0 || limiter == nil {
			return next
		}
		limit := redis_rate.PerMinute(perMinute)

		return func(c echo.Context) error {
			key := c.RealIP()
			if id, ok := c.Get(CustomerIDKey).(string); ok && id != "" {
				key = id
			}

			res, err := limiter.Allow(c.Request().Context(), keyPrefix+":"+key, limit)
			if err != nil {
				log.Warn().Err(err).Str("key", keyPrefix).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}

			c.Response().Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
			if res.Allowed == 0 {
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(res.RetryAfter.Seconds())+1))
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests, try again later")
			}
			return next(c)
		}
	}
}
