package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/elien2016/customers/internal/errs"
	"github.com/elien2016/customers/internal/server"
)

// RateLimitExpiry is how long an idle client's limiter is kept.
const RateLimitExpiry = 3 * time.Minute

type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// Enabled reports whether a request rate is configured.
func (r *RateLimitMiddleware) Enabled() bool {
	return r.server.Config.Server.RateLimitRPS > 0
}

// RateLimiter limits each client IP to the configured requests per second,
// with a burst of the same size rounded up.
func (r *RateLimitMiddleware) RateLimiter() echo.MiddlewareFunc {
	rps := r.server.Config.Server.RateLimitRPS
	burst := int(rps)
	if float64(burst) < rps || burst < 1 {
		burst++
	}

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(rps),
			Burst:     burst,
			ExpiresIn: RateLimitExpiry,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())
			GetLogger(c).Warn().Str("client", identifier).Msg("rate limit exceeded")
			return errs.NewTooManyRequestsError("Too many requests, slow down")
		},
	})
}

// RecordRateLimitHit reports a rejected request to New Relic.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if r.server.LoggerService != nil && r.server.LoggerService.GetApplication() != nil {
		r.server.LoggerService.GetApplication().RecordCustomEvent("RateLimitHit", map[string]any{
			"endpoint": endpoint,
		})
	}
}
