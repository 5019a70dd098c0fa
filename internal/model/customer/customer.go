// Package customer defines the Customer entity and its request payloads.
package customer

import "fmt"

// Customer is a single row of the customers table.
//
// Its JSON encoding is the public representation of the resource: exactly
// id, first_name, last_name, email and address.
type Customer struct {
	ID        int64  `json:"id" db:"id"`
	FirstName string `json:"first_name" db:"first_name"`
	LastName  string `json:"last_name" db:"last_name"`
	Email     string `json:"email" db:"email"`
	Address   string `json:"address" db:"address"`
}

// IsPersisted reports whether the store has already assigned an id.
func (c *Customer) IsPersisted() bool {
	return c.ID != 0
}

func (c *Customer) String() string {
	return fmt.Sprintf("<Customer %s %s id=[%d]>", c.FirstName, c.LastName, c.ID)
}
