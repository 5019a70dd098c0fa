package router

import (
	"github.com/labstack/echo/v4"

	"github.com/elien2016/customers/internal/handler"
	"github.com/elien2016/customers/static"
)

// registerSystemRoutes registers the endpoints outside the customer
// resource: banner, health, docs and their static assets.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/", h.Index.Index)
	r.GET("/status", h.Health.CheckHealth)
	r.StaticFS("/static", static.FS)
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
