package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/elien2016/customers/internal/model/customer"
)

// ErrCustomerPersisted is returned by Create for a record that already has
// an id.
var ErrCustomerPersisted = errors.New("customer is already persisted")

const (
	insertCustomer = `
		INSERT INTO customers (first_name, last_name, email, address)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	selectCustomer = `
		SELECT id, first_name, last_name, email, address
		FROM customers
		WHERE id = $1`

	deleteCustomer = `DELETE FROM customers WHERE id = $1`
)

// CustomerRepository stores customers in the customers table.
type CustomerRepository struct {
	db DBTX
}

func NewCustomerRepository(db DBTX) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Create inserts c and writes the generated id back into it.
func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	if c.IsPersisted() {
		return ErrCustomerPersisted
	}

	err := r.db.QueryRow(ctx, insertCustomer, c.FirstName, c.LastName, c.Email, c.Address).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("inserting customer: %w", err)
	}

	return nil
}

// Find returns the customer with the given id, or nil if there is none.
func (r *CustomerRepository) Find(ctx context.Context, id int64) (*customer.Customer, error) {
	var c customer.Customer

	err := r.db.QueryRow(ctx, selectCustomer, id).Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Address)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("selecting customer %d: %w", id, err)
	}

	return &c, nil
}

// Delete removes the customer with the given id. Deleting an id that does
// not exist is not an error.
func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, deleteCustomer, id); err != nil {
		return fmt.Errorf("deleting customer %d: %w", id, err)
	}

	return nil
}
