package repository

import (
	"github.com/elien2016/customers/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Customers *CustomerRepository
}

// NewRepositories builds every repository on the shared connection pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Customers: NewCustomerRepository(s.DB.Pool),
	}
}
