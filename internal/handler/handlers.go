package handler

import (
	"github.com/elien2016/customers/internal/server"
	"github.com/elien2016/customers/internal/service"
)

// Handlers groups all HTTP handlers.
type Handlers struct {
	Index     *IndexHandler
	Customers *CustomerHandler
	Health    *HealthHandler
	OpenAPI   *OpenAPIHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Index:     NewIndexHandler(s),
		Customers: NewCustomerHandler(s, services.Customers),
		Health:    NewHealthHandler(s),
		OpenAPI:   NewOpenAPIHandler(s),
	}
}
