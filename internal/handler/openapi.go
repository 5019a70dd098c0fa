package handler

import (
	"fmt"
	"io/fs"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/elien2016/customers/internal/server"
	"github.com/elien2016/customers/static"
)

// OpenAPIHandler serves the API reference UI.
//
// The page loads its renderer from a CDN and reads /static/openapi.json.
type OpenAPIHandler struct {
	Handler
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
	}
}

// ServeOpenAPIUI serves the embedded openapi.html without caching.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	page, err := fs.ReadFile(static.FS, static.OpenAPIUI)
	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	c.Response().Header().Set("Cache-Control", "no-cache")

	if err := c.HTMLBlob(http.StatusOK, page); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}

	return nil
}
