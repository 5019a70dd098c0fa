package customer

import (
	"github.com/elien2016/customers/internal/validation"
)

// Subject names the resource in validation messages
// ("Invalid Customer: missing email").
const Subject = "Customer"

// CreateCustomerRequest is the body of POST /customers.
//
// Fields are pointers so a key that is absent (or null) is distinguishable
// from an empty string. Field order is the order violations are reported in.
// Unknown keys, including "id", are ignored.
type CreateCustomerRequest struct {
	FirstName *string `json:"first_name" validate:"required"`
	LastName  *string `json:"last_name" validate:"required"`
	Email     *string `json:"email" validate:"required"`
	Address   *string `json:"address" validate:"required"`
}

func (r *CreateCustomerRequest) Validate() error {
	return validation.Struct(r)
}

func (r *CreateCustomerRequest) Subject() string {
	return Subject
}

// ToCustomer builds an unsaved Customer from a validated request.
func (r *CreateCustomerRequest) ToCustomer() *Customer {
	return &Customer{
		FirstName: deref(r.FirstName),
		LastName:  deref(r.LastName),
		Email:     deref(r.Email),
		Address:   deref(r.Address),
	}
}

// GetCustomerRequest carries the id of GET /customers/:id.
type GetCustomerRequest struct {
	ID int64 `param:"id"`
}

func (r *GetCustomerRequest) Validate() error {
	return nil
}

// DeleteCustomerRequest carries the id of DELETE /customers/:id.
type DeleteCustomerRequest struct {
	ID int64 `param:"id"`
}

func (r *DeleteCustomerRequest) Validate() error {
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
