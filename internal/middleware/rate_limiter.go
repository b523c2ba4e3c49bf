package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// DefaultRequestsPerSecond bounds how fast one client may trigger upstream work.
const DefaultRequestsPerSecond = 10

// RateLimiter limits requests per client IP with the default rate.
func RateLimiter() echo.MiddlewareFunc {
	return RateLimiterWith(DefaultRequestsPerSecond)
}

// RateLimiterWith limits requests per client IP to perSecond, with a burst
// of the same size.
func RateLimiterWith(perSecond float64) echo.MiddlewareFunc {
	config := middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStore(rate.Limit(perSecond)),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.String(http.StatusTooManyRequests, "Too many requests. Please try again later.")
		},
	}
	return middleware.RateLimiterWithConfig(config)
}
