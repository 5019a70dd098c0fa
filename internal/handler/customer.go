package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/elien2016/customers/internal/model/customer"
	"github.com/elien2016/customers/internal/server"
	"github.com/elien2016/customers/internal/service"
)

// RouteGetCustomer names GET /customers/:id so Location headers can be
// built by route reversal.
const RouteGetCustomer = "customers.get"

type CustomerHandler struct {
	Handler
	customers *service.CustomerService
}

func NewCustomerHandler(s *server.Server, customers *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		Handler:   NewHandler(s),
		customers: customers,
	}
}

// CreateCustomer handles POST /customers.
func (h *CustomerHandler) CreateCustomer(c echo.Context, req *customer.CreateCustomerRequest) (*customer.Customer, error) {
	created, err := h.customers.CreateCustomer(c.Request().Context(), req)
	if err != nil {
		return nil, err
	}

	if location := c.Echo().Reverse(RouteGetCustomer, created.ID); location != "" {
		c.Response().Header().Set(echo.HeaderLocation, location)
	}

	return created, nil
}

// GetCustomer handles GET /customers/:id.
func (h *CustomerHandler) GetCustomer(c echo.Context, req *customer.GetCustomerRequest) (*customer.Customer, error) {
	return h.customers.GetCustomer(c.Request().Context(), req.ID)
}

// DeleteCustomer handles DELETE /customers/:id.
func (h *CustomerHandler) DeleteCustomer(c echo.Context, req *customer.DeleteCustomerRequest) error {
	return h.customers.DeleteCustomer(c.Request().Context(), req.ID)
}

// Create, Get and Delete are the endpoints ready to register on a route.

func (h *CustomerHandler) Create() echo.HandlerFunc {
	return Handle(h.Handler, h.CreateCustomer, http.StatusCreated, func() *customer.CreateCustomerRequest {
		return &customer.CreateCustomerRequest{}
	})
}

func (h *CustomerHandler) Get() echo.HandlerFunc {
	return Handle(h.Handler, h.GetCustomer, http.StatusOK, func() *customer.GetCustomerRequest {
		return &customer.GetCustomerRequest{}
	})
}

func (h *CustomerHandler) Delete() echo.HandlerFunc {
	return HandleNoContent(h.Handler, h.DeleteCustomer, http.StatusNoContent, func() *customer.DeleteCustomerRequest {
		return &customer.DeleteCustomerRequest{}
	})
}
