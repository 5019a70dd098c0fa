package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/elien2016/customers/internal/server"
)

// IndexBanner is the body of GET /.
const IndexBanner = "Customers REST API. See /docs for the OpenAPI reference."

type IndexHandler struct {
	Handler
}

func NewIndexHandler(s *server.Server) *IndexHandler {
	return &IndexHandler{
		Handler: NewHandler(s),
	}
}

// Index returns a plain text banner.
func (h *IndexHandler) Index(c echo.Context) error {
	return c.String(http.StatusOK, IndexBanner)
}
