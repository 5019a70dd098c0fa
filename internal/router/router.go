// Package router builds the Echo instance: global middleware, the error
// handler and every route.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/elien2016/customers/internal/handler"
	"github.com/elien2016/customers/internal/middleware"
	"github.com/elien2016/customers/internal/server"
)

// NewRouter wires the middleware stack and routes onto a new Echo instance.
//
// Middleware order matters: the request id comes first so every response
// carries it, the New Relic transaction must exist before the request
// logger is built, and Recover wraps the handlers.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	mw := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = mw.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		mw.Tracing.NewRelicMiddleware(),
		mw.Tracing.EnhanceTracing(),
		mw.ContextEnhancer.EnhanceContext(),
		mw.Global.RequestLogger(),
		mw.Global.Recover(),
		mw.Global.CORS(),
		mw.Global.Secure(),
	)

	if mw.RateLimit.Enabled() {
		router.Use(mw.RateLimit.RateLimiter())
	}

	registerSystemRoutes(router, h)
	registerCustomerRoutes(router, h)

	return router
}

func registerCustomerRoutes(r *echo.Echo, h *handler.Handlers) {
	customers := r.Group("/customers")

	customers.POST("", h.Customers.Create())
	customers.GET("/:id", h.Customers.Get()).Name = handler.RouteGetCustomer
	customers.DELETE("/:id", h.Customers.Delete())
}
