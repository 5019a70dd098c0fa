package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/elien2016/customers/internal/server"
)

// TracingMiddleware reports each request to New Relic as a transaction.
// With a nil application both middlewares are pass-through.
type TracingMiddleware struct {
	server *server.Server
	nrApp  *newrelic.Application
}

func NewTracingMiddleware(s *server.Server, nrApp *newrelic.Application) *TracingMiddleware {
	return &TracingMiddleware{server: s, nrApp: nrApp}
}

func passThrough(next echo.HandlerFunc) echo.HandlerFunc {
	return next
}

// NewRelicMiddleware opens the transaction that EnhanceTracing and
// ContextEnhancer read back from the request context.
func (tm *TracingMiddleware) NewRelicMiddleware() echo.MiddlewareFunc {
	if tm.nrApp == nil {
		return passThrough
	}
	return nrecho.Middleware(tm.nrApp)
}

// EnhanceTracing labels the transaction with the request id and the
// customer id from the path, and notices any error the handler returns.
func (tm *TracingMiddleware) EnhanceTracing() echo.MiddlewareFunc {
	if tm.nrApp == nil {
		return passThrough
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			txn := newrelic.FromContext(c.Request().Context())
			if txn == nil {
				return next(c)
			}

			attrs := map[string]any{
				"http.real_ip":    c.RealIP(),
				"http.user_agent": c.Request().UserAgent(),
				"request.id":      GetRequestID(c),
				"customer.id":     c.Param("id"),
			}
			for key, value := range attrs {
				if value != "" {
					txn.AddAttribute(key, value)
				}
			}

			err := next(c)
			if err != nil {
				txn.NoticeError(nrpkgerrors.Wrap(err))
			}
			txn.AddAttribute("http.status_code", c.Response().Status)

			return err
		}
	}
}
